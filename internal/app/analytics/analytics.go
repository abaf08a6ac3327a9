// Package analytics derives dashboard, heatmap, trend and recap figures from
// a user's activity list. All computations are pure one-pass aggregations;
// windows are half-open [from, to) so boundary activities are never counted
// twice.
package analytics

import (
	"time"

	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/domain"
)

// Aggregate sums scores and durations for activities inside [from, to).
// Percentages short-circuit to 0 when total minutes is 0 — these values are
// serialized straight into API responses and must never be NaN.
func Aggregate(activities []domain.Activity, from, to time.Time) domain.Aggregate {
	agg := domain.Aggregate{
		ByCategory: make(map[domain.Category]domain.CategoryBreakdown),
	}

	for _, a := range activities {
		if a.Timestamp.Before(from) || !a.Timestamp.Before(to) {
			continue
		}
		agg.TotalScore += a.Score
		agg.TotalMinutes += a.DurationMin
		agg.ActivityCount++

		b := agg.ByCategory[a.Category]
		b.Minutes += a.DurationMin
		b.Count++
		b.Score += a.Score
		agg.ByCategory[a.Category] = b
	}

	if agg.TotalMinutes > 0 {
		for cat, b := range agg.ByCategory {
			b.Percentage = float64(b.Minutes) / float64(agg.TotalMinutes) * 100.0
			agg.ByCategory[cat] = b
		}
	}
	return agg
}

// Heatmap buckets activities by local (weekday, hour) and normalizes each
// bucket count against the busiest bucket, clamped to [0,1].
func Heatmap(activities []domain.Activity, tzOffsetMinutes int) domain.Heatmap {
	counts := make(map[[2]int]int)
	maxCount := 0
	for _, a := range activities {
		key := [2]int{
			localtime.Weekday(a.Timestamp, tzOffsetMinutes),
			localtime.Hour(a.Timestamp, tzOffsetMinutes),
		}
		counts[key]++
		if counts[key] > maxCount {
			maxCount = counts[key]
		}
	}

	if maxCount == 0 {
		return domain.Heatmap{HasData: false}
	}

	cells := make([]domain.HeatmapCell, 0, len(counts))
	for wd := 0; wd < 7; wd++ {
		for h := 0; h < 24; h++ {
			n := counts[[2]int{wd, h}]
			if n == 0 {
				continue
			}
			intensity := float64(n) / float64(maxCount)
			if intensity > 1 {
				intensity = 1
			}
			cells = append(cells, domain.HeatmapCell{
				Weekday:   wd,
				Hour:      h,
				Count:     n,
				Intensity: intensity,
			})
		}
	}
	return domain.Heatmap{Cells: cells, HasData: true}
}

// Trend produces a per-local-day score series for the trailing `days` days
// ending on the local day containing now. Days with no activity appear with
// zero values so the series has no holes.
func Trend(activities []domain.Activity, days int, tzOffsetMinutes int, now time.Time) domain.Trend {
	if days <= 0 {
		return domain.Trend{HasData: false}
	}

	byDay := make(map[string]domain.TrendPoint)
	for _, a := range activities {
		key := localtime.DateKey(a.Timestamp, tzOffsetMinutes)
		p := byDay[key]
		p.Score += a.Score
		p.Minutes += a.DurationMin
		p.ActivityCount++
		byDay[key] = p
	}

	localToday := localtime.Local(now, tzOffsetMinutes)
	points := make([]domain.TrendPoint, 0, days)
	hasData := false
	for i := days - 1; i >= 0; i-- {
		key := localToday.AddDate(0, 0, -i).Format("2006-01-02")
		p := byDay[key]
		p.Date = key
		if p.ActivityCount > 0 {
			hasData = true
		}
		points = append(points, p)
	}
	return domain.Trend{Points: points, HasData: hasData}
}

// Recap summarizes the ISO week before the one containing now.
func Recap(activities []domain.Activity, tzOffsetMinutes int, now time.Time) domain.WeeklyRecap {
	thisFrom, _ := localtime.WeekWindow(now, tzOffsetMinutes)
	from := thisFrom.Add(-7 * 24 * time.Hour)
	to := thisFrom

	agg := Aggregate(activities, from, to)
	recap := domain.WeeklyRecap{
		WeekStart:     localtime.DateKey(from, tzOffsetMinutes),
		TotalScore:    agg.TotalScore,
		TotalMinutes:  agg.TotalMinutes,
		ActivityCount: agg.ActivityCount,
		HasData:       agg.ActivityCount > 0,
	}
	if !recap.HasData {
		return recap
	}

	bestMinutes := 0
	for cat, b := range agg.ByCategory {
		if b.Minutes > bestMinutes {
			bestMinutes = b.Minutes
			recap.TopCategory = cat
		}
	}

	dayMinutes := make(map[string]int)
	for _, a := range activities {
		if a.Timestamp.Before(from) || !a.Timestamp.Before(to) {
			continue
		}
		dayMinutes[localtime.DateKey(a.Timestamp, tzOffsetMinutes)] += a.DurationMin
	}
	best := 0
	for day, mins := range dayMinutes {
		if mins > best || (mins == best && (recap.BusiestDay == "" || day < recap.BusiestDay)) {
			best = mins
			recap.BusiestDay = day
		}
	}
	return recap
}
