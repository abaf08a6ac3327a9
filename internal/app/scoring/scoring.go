// Package scoring maps activities to productivity scores, XP awards and
// chest credits. Scores are linear in duration and deterministic; a
// leisure-heavy day totals below zero.
package scoring

import "github.com/questlog/questlog/internal/domain"

// weightPerHour is the signed productivity weight table. Unknown categories
// score neutral (0) rather than erroring.
var weightPerHour = map[domain.Category]float64{
	domain.CategoryCareer:  10.0,
	domain.CategoryHealth:  8.0,
	domain.CategorySocial:  5.0,
	domain.CategoryChores:  0.5,
	domain.CategoryLeisure: -5.0,
}

// Score returns the signed productivity score for an activity.
// Score(cat, d1+d2) == Score(cat, d1) + Score(cat, d2) for all durations.
func Score(category domain.Category, durationMinutes int) float64 {
	w, ok := weightPerHour[category]
	if !ok {
		return 0
	}
	return w * float64(durationMinutes) / 60.0
}

// ─── Reward policy ──────────────────────────────────────────────────────────
// XP and chest credits are granted per logged activity and applied in the
// same transaction as the activity insert.

const (
	xpBase       = 20
	xpPerFiveMin = 1
	xpFocusBonus = 15

	// CreditsPerActivity is the chest-credit grant per logged activity.
	CreditsPerActivity int64 = 5
)

// XPForActivity returns the XP grant for one logged activity.
func XPForActivity(durationMinutes int, isFocusSession bool) int64 {
	xp := int64(xpBase + (durationMinutes/5)*xpPerFiveMin)
	if isFocusSession {
		xp += xpFocusBonus
	}
	return xp
}
