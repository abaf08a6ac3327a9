package domain

import "time"

// Timeframe scopes goals, challenges and leaderboards to a window.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Goal is a target number of hours in a category (or overall, when only a
// title is set) per timeframe. Progress is always derived at read time from
// matching activities in the current window, never stored.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Category    Category  `json:"category,omitempty"` // empty = title-based, all categories
	Title       string    `json:"title"`
	TargetHours float64   `json:"target_value"`
	Timeframe   Timeframe `json:"timeframe"`
	CreatedAt   time.Time `json:"created_at"`
}

// GoalStatus classifies goal pacing. Every goal maps to exactly one status.
type GoalStatus string

const (
	GoalComplete       GoalStatus = "complete"
	GoalOnTrack        GoalStatus = "on_track"
	GoalSlightlyBehind GoalStatus = "slightly_behind"
	GoalBehind         GoalStatus = "behind"
)

// GoalProgress is the derived pacing state of one goal.
type GoalProgress struct {
	HoursLogged     float64    `json:"hours_logged"`
	ProgressPercent int        `json:"progress_percent"` // clamped to [0,100]
	ExpectedHours   float64    `json:"expected_hours"`
	ExpectedPercent int        `json:"expected_percent"`
	Status          GoalStatus `json:"status"`
}
