// Package localtime normalizes UTC activity timestamps into the user's local
// calendar. Every server-side date filter (dashboard "today", heatmap
// buckets, weekly windows) goes through this package rather than server-local
// time, otherwise activities near midnight land on the wrong day.
//
// tzOffsetMinutes follows the JavaScript getTimezoneOffset convention:
// positive west of UTC, so local = UTC minus the offset. The offset supplied
// by the client at request time is trusted as-is; DST transitions get no
// special handling.
package localtime

import (
	"strconv"
	"time"
)

// Local shifts a UTC instant into the user's wall clock. The result carries
// the UTC location but its Y/M/D/H fields read as local values.
func Local(tsUTC time.Time, tzOffsetMinutes int) time.Time {
	return tsUTC.UTC().Add(-time.Duration(tzOffsetMinutes) * time.Minute)
}

// Date returns the user's local calendar date for a UTC instant.
func Date(tsUTC time.Time, tzOffsetMinutes int) (year int, month time.Month, day int) {
	return Local(tsUTC, tzOffsetMinutes).Date()
}

// Hour returns the user's local hour (0..23) for a UTC instant.
func Hour(tsUTC time.Time, tzOffsetMinutes int) int {
	return Local(tsUTC, tzOffsetMinutes).Hour()
}

// DateKey returns the local date formatted as YYYY-MM-DD.
func DateKey(tsUTC time.Time, tzOffsetMinutes int) string {
	return Local(tsUTC, tzOffsetMinutes).Format("2006-01-02")
}

// ParseOffset parses a tz_offset query value. Malformed or missing input
// defaults to 0 (UTC) rather than failing the request.
func ParseOffset(s string) int {
	if s == "" {
		return 0
	}
	off, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return off
}

// toUTC converts a local wall-clock instant back to UTC.
func toUTC(local time.Time, tzOffsetMinutes int) time.Time {
	return local.Add(time.Duration(tzOffsetMinutes) * time.Minute)
}

// DayWindow returns the half-open UTC interval [from, to) covering one local
// calendar day.
func DayWindow(year int, month time.Month, day int, tzOffsetMinutes int) (from, to time.Time) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	from = toUTC(start, tzOffsetMinutes)
	return from, from.Add(24 * time.Hour)
}

// DayWindowOf returns the local-day window containing the given UTC instant.
func DayWindowOf(tsUTC time.Time, tzOffsetMinutes int) (from, to time.Time) {
	y, m, d := Date(tsUTC, tzOffsetMinutes)
	return DayWindow(y, m, d, tzOffsetMinutes)
}

// WeekWindow returns the half-open UTC interval covering the local ISO week
// (Monday 00:00 start) containing the given instant. Goals, leaderboards,
// challenges and the weekly recap all share this boundary so "weekly" means
// the same thing everywhere.
func WeekWindow(tsUTC time.Time, tzOffsetMinutes int) (from, to time.Time) {
	local := Local(tsUTC, tzOffsetMinutes)
	y, m, d := local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	// Monday = 0 .. Sunday = 6
	back := (int(midnight.Weekday()) + 6) % 7
	monday := midnight.AddDate(0, 0, -back)

	from = toUTC(monday, tzOffsetMinutes)
	return from, from.Add(7 * 24 * time.Hour)
}

// MonthWindow returns the half-open UTC interval covering the local calendar
// month containing the given instant.
func MonthWindow(tsUTC time.Time, tzOffsetMinutes int) (from, to time.Time) {
	local := Local(tsUTC, tzOffsetMinutes)
	y, m, _ := local.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	from = toUTC(first, tzOffsetMinutes)
	to = toUTC(first.AddDate(0, 1, 0), tzOffsetMinutes)
	return from, to
}

// Window dispatches on a timeframe name ("weekly" or "monthly"); anything
// else falls back to weekly.
func Window(timeframe string, tsUTC time.Time, tzOffsetMinutes int) (from, to time.Time) {
	if timeframe == "monthly" {
		return MonthWindow(tsUTC, tzOffsetMinutes)
	}
	return WeekWindow(tsUTC, tzOffsetMinutes)
}

// Weekday returns the local weekday with Monday = 0 .. Sunday = 6, matching
// the heatmap grid layout.
func Weekday(tsUTC time.Time, tzOffsetMinutes int) int {
	return (int(Local(tsUTC, tzOffsetMinutes).Weekday()) + 6) % 7
}
