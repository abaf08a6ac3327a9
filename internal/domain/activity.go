// Package domain defines the core QuestLog types shared across layers.
// Everything derived (daily scores, goal progress, leaderboard ranks, badge
// progress) is computed from the Activity set for a user and time window;
// only xp and chest_credits are stored running totals, incremented
// transactionally at activity-log time.
package domain

import "time"

// Category classifies an activity for scoring.
type Category string

const (
	CategoryCareer  Category = "Career"
	CategoryHealth  Category = "Health"
	CategoryLeisure Category = "Leisure"
	CategoryChores  Category = "Chores"
	CategorySocial  Category = "Social"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryCareer, CategoryHealth, CategoryLeisure, CategoryChores, CategorySocial}
}

// ParseCategory normalizes a category string. Unknown strings are returned
// as-is: the scorer treats them as neutral rather than erroring.
func ParseCategory(s string) Category {
	for _, c := range Categories() {
		if string(c) == s {
			return c
		}
	}
	return Category(s)
}

// Activity is a single logged activity. Immutable after creation except for
// name, duration and category via edit; the productivity score is re-derived
// on every edit.
type Activity struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"activity_name"`
	Category       Category  `json:"category"`
	DurationMin    int       `json:"duration_minutes"`
	Timestamp      time.Time `json:"timestamp"` // UTC instant
	Score          float64   `json:"productivity_score"`
	IsFocusSession bool      `json:"is_focus_session"`
}
