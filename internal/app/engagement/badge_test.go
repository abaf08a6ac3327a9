package engagement

import (
	"testing"
	"time"

	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testUser(t *testing.T, db *sqlite.DB) int64 {
	t.Helper()
	u, err := db.CreateUser(domain.User{Email: "alice@example.com", Name: "Alice", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	return u.ID
}

func TestBadgeCatalog_Wellformed(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range BadgeCatalog() {
		if def.Name == "" || def.Icon == "" || def.Description == "" {
			t.Errorf("badge %+v missing fields", def)
		}
		if def.Predicate == nil {
			t.Errorf("badge %q has no predicate", def.Name)
		}
		if seen[def.Name] {
			t.Errorf("duplicate badge name %q", def.Name)
		}
		seen[def.Name] = true
	}
}

func TestBadgePredicates_ZeroStatsSafe(t *testing.T) {
	// Every predicate must accept a zero-valued snapshot without panicking,
	// and none should fire on it.
	for _, def := range BadgeCatalog() {
		if def.Predicate(domain.UserStats{}) {
			t.Errorf("badge %q fires on zero stats", def.Name)
		}
	}
}

func TestEvaluate_FirstSteps(t *testing.T) {
	db := testDB(t)
	uid := testUser(t, db)
	e := NewBadgeEvaluator(db)

	stats := domain.UserStats{TotalActivities: 1, TriggerHour: 14}
	earned, err := e.Evaluate(uid, stats)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if len(earned) != 1 || earned[0] != "First Steps" {
		t.Errorf("earned = %v, want [First Steps]", earned)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	db := testDB(t)
	uid := testUser(t, db)
	e := NewBadgeEvaluator(db)

	stats := domain.UserStats{TotalActivities: 1, TriggerHour: 14}
	if _, err := e.Evaluate(uid, stats); err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	again, err := e.Evaluate(uid, stats)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second evaluation earned %v, want none", again)
	}

	badges, err := e.Earned(uid)
	if err != nil {
		t.Fatalf("Earned() error: %v", err)
	}
	if len(badges) != 1 {
		t.Errorf("stored badges = %d, want 1", len(badges))
	}
}

func TestEvaluate_EarlyBirdVsNightOwl(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want map[string]bool
	}{
		{"6am", 6, map[string]bool{"Early Bird": true}},
		{"noon", 12, map[string]bool{}},
		{"11pm", 23, map[string]bool{"Night Owl": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			uid := testUser(t, db)
			e := NewBadgeEvaluator(db)

			earned, err := e.Evaluate(uid, domain.UserStats{TotalActivities: 1, TriggerHour: tt.hour})
			if err != nil {
				t.Fatalf("Evaluate() error: %v", err)
			}
			got := make(map[string]bool)
			for _, n := range earned {
				if n == "Early Bird" || n == "Night Owl" {
					got[n] = true
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("time badges = %v, want %v", got, tt.want)
			}
			for n := range tt.want {
				if !got[n] {
					t.Errorf("missing badge %q", n)
				}
			}
		})
	}
}

func TestEvaluate_StreakBadges(t *testing.T) {
	db := testDB(t)
	uid := testUser(t, db)
	e := NewBadgeEvaluator(db)

	earned, err := e.Evaluate(uid, domain.UserStats{TotalActivities: 7, CurrentStreak: 7, TriggerHour: 12})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	want := map[string]bool{"On a Roll": false, "Week Warrior": false}
	for _, n := range earned {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, got := range want {
		if !got {
			t.Errorf("badge %q should be earned at a 7-day streak", n)
		}
	}
}

func TestIconFor(t *testing.T) {
	if got := IconFor("First Steps"); got != "👣" {
		t.Errorf("IconFor(First Steps) = %q", got)
	}
	if got := IconFor("No Such Badge"); got != "🏆" {
		t.Errorf("IconFor(unknown) = %q, want trophy fallback", got)
	}
}

func TestBuildStats(t *testing.T) {
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	activities := []domain.Activity{
		{Category: domain.CategoryCareer, DurationMin: 90, Timestamp: base, IsFocusSession: true},
		{Category: domain.CategoryCareer, DurationMin: 30, Timestamp: base.Add(time.Hour)},
		{Category: domain.CategoryHealth, DurationMin: 60, Timestamp: base.Add(2 * time.Hour)},
	}

	stats := BuildStats(activities, 3, domain.Streak{CurrentDays: 2, LongestDays: 5}, 14)
	if stats.TotalActivities != 3 {
		t.Errorf("TotalActivities = %d, want 3", stats.TotalActivities)
	}
	if stats.TotalMinutes != 180 {
		t.Errorf("TotalMinutes = %d, want 180", stats.TotalMinutes)
	}
	if got := stats.HoursIn(domain.CategoryCareer); got != 2 {
		t.Errorf("career hours = %v, want 2", got)
	}
	if stats.FocusSessions != 1 {
		t.Errorf("FocusSessions = %d, want 1", stats.FocusSessions)
	}
	if stats.Level != 3 || stats.CurrentStreak != 2 || stats.LongestStreak != 5 || stats.TriggerHour != 14 {
		t.Errorf("passthrough fields wrong: %+v", stats)
	}
}

func TestUserStats_HoursInNilMap(t *testing.T) {
	var s domain.UserStats
	if got := s.HoursIn(domain.CategoryCareer); got != 0 {
		t.Errorf("HoursIn on nil map = %v, want 0", got)
	}
}
