package domain

import "time"

// User is a registered QuestLog account.
// xp and chest_credits are the only stored running totals; both are
// incremented inside the same transaction that inserts an activity.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarColor  string    `json:"avatar_color"`
	Bio          string    `json:"bio"`
	BirthYear    int       `json:"birth_year,omitempty"`
	XP           int64     `json:"xp"`
	ChestCredits int64     `json:"chest_credits"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
}

// LevelProgress describes where a user sits on the XP curve.
type LevelProgress struct {
	Level           int     `json:"level"`
	NextLevel       int     `json:"next_level"`
	XPInLevel       int64   `json:"xp_in_level"`
	XPForNextLevel  int64   `json:"xp_for_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

// LevelUp reports a level crossing caused by one XP award. Emitted exactly
// once per crossing with the final level, even when several levels are
// crossed in a single update.
type LevelUp struct {
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

// Streak counts consecutive local-calendar days with at least one activity.
type Streak struct {
	CurrentDays int `json:"current_days"`
	LongestDays int `json:"longest_days"`
}
