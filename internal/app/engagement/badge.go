package engagement

import (
	"time"

	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/infra/sqlite"
)

// BadgeEvaluator checks the badge catalog against a stats snapshot after
// every activity-log event. Earning is one-way and idempotent: the store
// ignores duplicate earns, so re-evaluating returns no duplicates.
type BadgeEvaluator struct {
	db      *sqlite.DB
	catalog []domain.BadgeDef
}

// NewBadgeEvaluator creates an evaluator over the full catalog.
func NewBadgeEvaluator(db *sqlite.DB) *BadgeEvaluator {
	return &BadgeEvaluator{db: db, catalog: BadgeCatalog()}
}

// Evaluate returns the names of badges newly earned by this snapshot.
func (e *BadgeEvaluator) Evaluate(userID int64, stats domain.UserStats) ([]string, error) {
	var earned []string
	for _, def := range e.catalog {
		if def.Predicate == nil || !def.Predicate(stats) {
			continue
		}
		isNew, err := e.db.EarnBadge(userID, def.Name, time.Now())
		if err != nil {
			return nil, err
		}
		if isNew {
			earned = append(earned, def.Name)
		}
	}
	return earned, nil
}

// Earned lists a user's earned badges, newest first.
func (e *BadgeEvaluator) Earned(userID int64) ([]domain.EarnedBadge, error) {
	return e.db.ListEarnedBadges(userID)
}

// Catalog returns the badge definitions (for display).
func (e *BadgeEvaluator) Catalog() []domain.BadgeDef {
	return e.catalog
}

// IconFor resolves a badge icon by name with an explicit fallback. The
// catalog is closed: unknown names get the default trophy.
func IconFor(name string) string {
	for _, def := range BadgeCatalog() {
		if def.Name == name {
			return def.Icon
		}
	}
	return "🏆"
}

// BadgeCatalog returns the full static badge catalog. Predicates are
// independent boolean checks over the stats snapshot; zero-valued fields are
// valid input, so evaluation never fails on missing stats.
func BadgeCatalog() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			Name: "First Steps", Icon: "👣",
			Description: "Log your first activity.",
			Predicate:   func(s domain.UserStats) bool { return s.TotalActivities >= 1 },
		},
		{
			Name: "Getting Into It", Icon: "📈",
			Description: "Log 10 activities.",
			Predicate:   func(s domain.UserStats) bool { return s.TotalActivities >= 10 },
		},
		{
			Name: "Century Club", Icon: "💯",
			Description: "Log 100 activities.",
			Predicate:   func(s domain.UserStats) bool { return s.TotalActivities >= 100 },
		},
		{
			Name: "Early Bird", Icon: "🌅",
			Description: "Log an activity before 8am.",
			Predicate:   func(s domain.UserStats) bool { return s.TotalActivities >= 1 && s.TriggerHour < 8 },
		},
		{
			Name: "Night Owl", Icon: "🦉",
			Description: "Log an activity at 10pm or later.",
			Predicate:   func(s domain.UserStats) bool { return s.TotalActivities >= 1 && s.TriggerHour >= 22 },
		},
		{
			Name: "On a Roll", Icon: "🔥",
			Description: "Keep a 3-day streak.",
			Predicate:   func(s domain.UserStats) bool { return s.CurrentStreak >= 3 },
		},
		{
			Name: "Week Warrior", Icon: "⚔️",
			Description: "Keep a 7-day streak.",
			Predicate:   func(s domain.UserStats) bool { return s.CurrentStreak >= 7 },
		},
		{
			Name: "Habit Machine", Icon: "🏛️",
			Description: "Keep a 30-day streak.",
			Predicate:   func(s domain.UserStats) bool { return s.CurrentStreak >= 30 },
		},
		{
			Name: "Career Climber", Icon: "💼",
			Description: "Log 25 hours of Career activities.",
			Predicate:   func(s domain.UserStats) bool { return s.HoursIn(domain.CategoryCareer) >= 25 },
		},
		{
			Name: "Iron Body", Icon: "💪",
			Description: "Log 25 hours of Health activities.",
			Predicate:   func(s domain.UserStats) bool { return s.HoursIn(domain.CategoryHealth) >= 25 },
		},
		{
			Name: "Social Butterfly", Icon: "🦋",
			Description: "Log 10 hours of Social activities.",
			Predicate:   func(s domain.UserStats) bool { return s.HoursIn(domain.CategorySocial) >= 10 },
		},
		{
			Name: "Clean Machine", Icon: "🧹",
			Description: "Log 10 hours of Chores.",
			Predicate:   func(s domain.UserStats) bool { return s.HoursIn(domain.CategoryChores) >= 10 },
		},
		{
			Name: "Deep Focus", Icon: "🎯",
			Description: "Complete your first focus session.",
			Predicate:   func(s domain.UserStats) bool { return s.FocusSessions >= 1 },
		},
		{
			Name: "Flow State", Icon: "🧘",
			Description: "Complete 25 focus sessions.",
			Predicate:   func(s domain.UserStats) bool { return s.FocusSessions >= 25 },
		},
		{
			Name: "Rising Star", Icon: "⭐",
			Description: "Reach level 10.",
			Predicate:   func(s domain.UserStats) bool { return s.Level >= 10 },
		},
		{
			Name: "Questlog Legend", Icon: "👑",
			Description: "Reach level 50.",
			Predicate:   func(s domain.UserStats) bool { return s.Level >= 50 },
		},
	}
}

// BuildStats assembles the snapshot handed to badge predicates. All fields
// derive from the activity history plus the triggering activity's local hour.
func BuildStats(activities []domain.Activity, level int, streak domain.Streak, triggerHour int) domain.UserStats {
	stats := domain.UserStats{
		CategoryHours: make(map[domain.Category]float64),
		CurrentStreak: streak.CurrentDays,
		LongestStreak: streak.LongestDays,
		Level:         level,
		TriggerHour:   triggerHour,
	}
	for _, a := range activities {
		stats.TotalActivities++
		stats.TotalMinutes += int64(a.DurationMin)
		stats.CategoryHours[a.Category] += float64(a.DurationMin) / 60.0
		if a.IsFocusSession {
			stats.FocusSessions++
		}
	}
	return stats
}
