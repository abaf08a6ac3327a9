package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/questlog/questlog/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func addUser(t *testing.T, db *DB, email string) int64 {
	t.Helper()
	u, err := db.CreateUser(domain.User{Email: email, Name: "User", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	return u.ID
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	db.Close()

	// Reopening the same file reruns migrations; they must be no-ops.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

// ─── Users ──────────────────────────────────────────────────────────────────

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	addUser(t, db, "alice@example.com")

	_, err := db.CreateUser(domain.User{Email: "alice@example.com", Name: "Other"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetUser(42)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUser_StartsAtZero(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	u, err := db.GetUser(uid)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if u.XP != 0 || u.ChestCredits != 0 {
		t.Errorf("new user xp/credits = %d/%d, want 0/0", u.XP, u.ChestCredits)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	if err := db.UpdateProfile(uid, "Alicia", "#ff8800", "hello", false); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	u, err := db.GetUser(uid)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if u.Name != "Alicia" || u.AvatarColor != "#ff8800" || u.Bio != "hello" || u.IsPublic {
		t.Errorf("profile = %+v", u)
	}
}

func TestListPublicUsers(t *testing.T) {
	db := testDB(t)
	addUser(t, db, "alice@example.com")
	if _, err := db.CreateUser(domain.User{Email: "bob@example.com", Name: "Bob", IsPublic: false}); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	users, err := db.ListPublicUsers()
	if err != nil {
		t.Fatalf("ListPublicUsers() error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "alice@example.com" {
		t.Errorf("public users = %+v, want only alice", users)
	}
}

// ─── Activities ─────────────────────────────────────────────────────────────

func TestLogActivity_AppliesRewardsTransactionally(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	a := domain.Activity{
		UserID:      uid,
		Name:        "studying",
		Category:    domain.CategoryCareer,
		DurationMin: 60,
		Timestamp:   time.Now().UTC(),
		Score:       10,
	}
	id, oldXP, newXP, err := db.LogActivity(a, 32, 5)
	if err != nil {
		t.Fatalf("LogActivity() error: %v", err)
	}
	if id == 0 {
		t.Error("id should be assigned")
	}
	if oldXP != 0 || newXP != 32 {
		t.Errorf("xp = %d -> %d, want 0 -> 32", oldXP, newXP)
	}

	u, err := db.GetUser(uid)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if u.XP != 32 || u.ChestCredits != 5 {
		t.Errorf("stored totals = %d xp / %d credits, want 32/5", u.XP, u.ChestCredits)
	}
}

func TestLogActivity_SequentialAwardsAccumulate(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	a := domain.Activity{UserID: uid, Name: "x", Category: domain.CategoryCareer, DurationMin: 30, Timestamp: time.Now().UTC()}
	for i := 0; i < 5; i++ {
		if _, _, _, err := db.LogActivity(a, 10, 5); err != nil {
			t.Fatalf("LogActivity() #%d error: %v", i, err)
		}
	}

	u, _ := db.GetUser(uid)
	if u.XP != 50 || u.ChestCredits != 25 {
		t.Errorf("totals = %d/%d, want 50/25 (no lost updates)", u.XP, u.ChestCredits)
	}
}

func TestLogActivity_UnknownUser(t *testing.T) {
	db := testDB(t)
	a := domain.Activity{UserID: 99, Name: "x", Category: domain.CategoryCareer, DurationMin: 30, Timestamp: time.Now().UTC()}
	if _, _, _, err := db.LogActivity(a, 10, 5); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateActivity_OwnershipEnforced(t *testing.T) {
	db := testDB(t)
	alice := addUser(t, db, "alice@example.com")
	bob := addUser(t, db, "bob@example.com")

	a := domain.Activity{UserID: alice, Name: "x", Category: domain.CategoryCareer, DurationMin: 30, Timestamp: time.Now().UTC()}
	id, _, _, err := db.LogActivity(a, 10, 5)
	if err != nil {
		t.Fatalf("LogActivity() error: %v", err)
	}

	if err := db.UpdateActivity(id, bob, "hijack", domain.CategoryLeisure, 5, -1); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("update error = %v, want ErrNotOwner", err)
	}
	if err := db.DeleteActivity(id, bob); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("delete error = %v, want ErrNotOwner", err)
	}

	if err := db.UpdateActivity(id, alice, "revised", domain.CategoryHealth, 45, 6); err != nil {
		t.Fatalf("owner update error: %v", err)
	}
	got, err := db.GetActivity(id)
	if err != nil {
		t.Fatalf("GetActivity() error: %v", err)
	}
	if got.Name != "revised" || got.Category != domain.CategoryHealth || got.DurationMin != 45 || got.Score != 6 {
		t.Errorf("updated activity = %+v", got)
	}
}

func TestListActivitiesBetween_HalfOpen(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	for _, ts := range []time.Time{from.Add(-time.Second), from, to.Add(-time.Second), to} {
		a := domain.Activity{UserID: uid, Name: "x", Category: domain.CategoryCareer, DurationMin: 30, Timestamp: ts}
		if _, _, _, err := db.LogActivity(a, 0, 0); err != nil {
			t.Fatalf("LogActivity() error: %v", err)
		}
	}

	got, err := db.ListActivitiesBetween(uid, from, to)
	if err != nil {
		t.Fatalf("ListActivitiesBetween() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (boundary [from, to))", len(got))
	}
}

func TestScoresBetween_GroupsByUser(t *testing.T) {
	db := testDB(t)
	alice := addUser(t, db, "alice@example.com")
	bob := addUser(t, db, "bob@example.com")

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)
	log := func(uid int64, score float64) {
		a := domain.Activity{UserID: uid, Name: "x", Category: domain.CategoryCareer, DurationMin: 30, Timestamp: from.Add(time.Hour), Score: score}
		if _, _, _, err := db.LogActivity(a, 0, 0); err != nil {
			t.Fatalf("LogActivity() error: %v", err)
		}
	}
	log(alice, 10)
	log(alice, 5)
	log(bob, 3)

	scores, err := db.ScoresBetween(from, to)
	if err != nil {
		t.Fatalf("ScoresBetween() error: %v", err)
	}
	if scores[alice] != 15 || scores[bob] != 3 {
		t.Errorf("scores = %v, want alice 15 bob 3", scores)
	}
}

// ─── Badges and items ───────────────────────────────────────────────────────

func TestEarnBadge_Idempotent(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	isNew, err := db.EarnBadge(uid, "First Steps", time.Now())
	if err != nil {
		t.Fatalf("EarnBadge() error: %v", err)
	}
	if !isNew {
		t.Error("first earn should report new")
	}

	isNew, err = db.EarnBadge(uid, "First Steps", time.Now())
	if err != nil {
		t.Fatalf("EarnBadge() error: %v", err)
	}
	if isNew {
		t.Error("re-earn should be a no-op")
	}

	count, err := db.BadgeCount(uid)
	if err != nil {
		t.Fatalf("BadgeCount() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestGrantItem_IncrementsCount(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	for i := 0; i < 3; i++ {
		if err := db.GrantItem(uid, "coffee_mug"); err != nil {
			t.Fatalf("GrantItem() error: %v", err)
		}
	}

	items, err := db.ListItems(uid)
	if err != nil {
		t.Fatalf("ListItems() error: %v", err)
	}
	if len(items) != 1 || items[0].Count != 3 {
		t.Errorf("items = %+v, want 3x coffee_mug", items)
	}
}

func TestSetItemBroken(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")

	if err := db.GrantItem(uid, "coffee_mug"); err != nil {
		t.Fatalf("GrantItem() error: %v", err)
	}
	if err := db.SetItemBroken(uid, "coffee_mug", true); err != nil {
		t.Fatalf("SetItemBroken() error: %v", err)
	}
	items, _ := db.ListItems(uid)
	if !items[0].IsBroken {
		t.Error("item should be broken")
	}
}

func TestSpendChestCredits(t *testing.T) {
	db := testDB(t)
	uid := addUser(t, db, "alice@example.com")
	if _, _, err := db.AwardXP(uid, 0, 60); err != nil {
		t.Fatalf("AwardXP() error: %v", err)
	}

	remaining, err := db.SpendChestCredits(uid, 50)
	if err != nil {
		t.Fatalf("SpendChestCredits() error: %v", err)
	}
	if remaining != 10 {
		t.Errorf("remaining = %d, want 10", remaining)
	}

	if _, err := db.SpendChestCredits(uid, 50); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Errorf("error = %v, want ErrInsufficientCredits", err)
	}
	u, _ := db.GetUser(uid)
	if u.ChestCredits != 10 {
		t.Errorf("credits = %d, want 10 (failed spend must not write)", u.ChestCredits)
	}
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func TestGoalCRUD(t *testing.T) {
	db := testDB(t)
	alice := addUser(t, db, "alice@example.com")
	bob := addUser(t, db, "bob@example.com")

	g, err := db.CreateGoal(domain.Goal{
		UserID:      alice,
		Category:    domain.CategoryCareer,
		Title:       "Deep work",
		TargetHours: 10,
		Timeframe:   domain.TimeframeWeekly,
	})
	if err != nil {
		t.Fatalf("CreateGoal() error: %v", err)
	}
	if g.ID == 0 {
		t.Error("goal id should be assigned")
	}

	goals, err := db.ListGoals(alice)
	if err != nil {
		t.Fatalf("ListGoals() error: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Deep work" {
		t.Errorf("goals = %+v", goals)
	}

	if err := db.DeleteGoal(g.ID, bob); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("delete error = %v, want ErrNotOwner", err)
	}
	if err := db.DeleteGoal(g.ID, alice); err != nil {
		t.Fatalf("DeleteGoal() error: %v", err)
	}
	if _, err := db.GetGoal(g.ID); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("error = %v, want ErrGoalNotFound", err)
	}
}
