package engagement

import (
	"sort"
	"time"

	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/domain"
)

// ComputeStreak derives the current and longest consecutive-day streaks from
// activity history. A day counts if it has >= 1 activity in the user's local
// calendar; any local day with zero activities breaks the run. The current
// streak survives when the latest active day is today or yesterday (today
// may simply not have an activity yet).
func ComputeStreak(activities []domain.Activity, tzOffsetMinutes int, now time.Time) domain.Streak {
	if len(activities) == 0 {
		return domain.Streak{}
	}

	seen := make(map[string]struct{})
	for _, a := range activities {
		seen[localtime.DateKey(a.Timestamp, tzOffsetMinutes)] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i], _ = time.Parse("2006-01-02", d)
	}

	// Longest run anywhere in history.
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Current run must reach today or yesterday.
	localToday := localtime.Local(now, tzOffsetMinutes)
	y, m, d := localToday.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	gap := today.Sub(days[0])
	if gap < 0 || gap > 24*time.Hour {
		return domain.Streak{CurrentDays: 0, LongestDays: longest}
	}
	current := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		current++
	}
	return domain.Streak{CurrentDays: current, LongestDays: longest}
}
