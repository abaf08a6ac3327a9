// Package goals computes derived goal progress. Progress is recomputed from
// the activity set on every read; the linear pacing model compares hours
// logged against the fraction of the window already elapsed.
package goals

import (
	"math"
	"time"

	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/domain"
)

// slightlyBehindFraction is the tolerance below expected pace that still
// counts as "slightly behind" rather than "behind".
const slightlyBehindFraction = 0.8

// Progress derives the pacing state of one goal from the activities inside
// its current window. Zero matching activities is a normal state, not an
// error. The window boundary comes from localtime so "weekly" agrees with
// the leaderboard week.
func Progress(goal domain.Goal, activities []domain.Activity, now time.Time, tzOffsetMinutes int) domain.GoalProgress {
	from, to := localtime.Window(string(goal.Timeframe), now, tzOffsetMinutes)

	var minutes int
	for _, a := range activities {
		if a.Timestamp.Before(from) || !a.Timestamp.Before(to) {
			continue
		}
		if goal.Category != "" && a.Category != goal.Category {
			continue
		}
		minutes += a.DurationMin
	}
	hours := float64(minutes) / 60.0

	p := domain.GoalProgress{
		HoursLogged:     hours,
		ProgressPercent: percent(hours, goal.TargetHours),
	}

	totalDays := to.Sub(from).Hours() / 24.0
	elapsedDays := daysElapsed(now, from, to)
	if totalDays > 0 {
		p.ExpectedHours = goal.TargetHours * (elapsedDays / totalDays)
	}
	p.ExpectedPercent = percent(p.ExpectedHours, goal.TargetHours)
	p.Status = classify(hours, p.ExpectedHours, goal.TargetHours)
	return p
}

// daysElapsed counts whole-or-partial days since the window opened, clamped
// to the window length. The current partial day counts as elapsed so a goal
// never reads as behind at Monday breakfast purely from pacing.
func daysElapsed(now, from, to time.Time) float64 {
	if now.Before(from) {
		return 0
	}
	if !now.Before(to) {
		return to.Sub(from).Hours() / 24.0
	}
	return math.Floor(now.Sub(from).Hours()/24.0) + 1
}

// classify maps (logged, expected, target) to exactly one status. The
// mapping is total and monotonic: more hours never yields a worse status.
func classify(logged, expected, target float64) domain.GoalStatus {
	switch {
	case target > 0 && logged >= target:
		return domain.GoalComplete
	case logged >= expected:
		return domain.GoalOnTrack
	case logged >= expected*slightlyBehindFraction:
		return domain.GoalSlightlyBehind
	default:
		return domain.GoalBehind
	}
}

// percent returns round(have/want*100) clamped to [0,100]; 0 when want is 0.
func percent(have, want float64) int {
	if want <= 0 {
		return 0
	}
	pct := int(math.Round(have / want * 100.0))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
