package domain

import "time"

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgeDef is a static catalog entry. The predicate runs against a UserStats
// snapshot; badges move locked -> earned exactly once and never back.
type BadgeDef struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Predicate   func(UserStats) bool `json:"-"` // not serialized
}

// EarnedBadge records when a user earned a badge.
type EarnedBadge struct {
	UserID   int64     `json:"user_id"`
	Badge    string    `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

// UserStats is the snapshot fed to badge predicates after each activity log.
// Zero values are valid: predicates never fail on missing fields.
type UserStats struct {
	TotalActivities int64                `json:"total_activities"`
	TotalMinutes    int64                `json:"total_minutes"`
	CategoryHours   map[Category]float64 `json:"category_hours"`
	CurrentStreak   int                  `json:"current_streak"`
	LongestStreak   int                  `json:"longest_streak"`
	FocusSessions   int64                `json:"focus_sessions"`
	Level           int                  `json:"level"`
	TriggerHour     int                  `json:"trigger_hour"` // local hour of the activity that triggered evaluation
}

// HoursIn returns the logged hours for a category, 0 when unknown.
func (s UserStats) HoursIn(c Category) float64 {
	if s.CategoryHours == nil {
		return 0
	}
	return s.CategoryHours[c]
}

// ─── Items / loot chests ────────────────────────────────────────────────────

// Rarity tiers for collectible items.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// ItemDef is a static collectible catalog entry.
type ItemDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Rarity Rarity `json:"rarity"`
}

// OwnedItem is a user's ownership record for one catalog item.
type OwnedItem struct {
	UserID   int64  `json:"user_id"`
	ItemID   string `json:"item_id"`
	Count    int    `json:"count"`
	IsBroken bool   `json:"is_broken"`
}

// ChestResult is the outcome of opening one loot chest.
type ChestResult struct {
	OpenID           string  `json:"open_id"`
	Item             ItemDef `json:"item"`
	CreditsSpent     int64   `json:"credits_spent"`
	CreditsRemaining int64   `json:"credits_remaining"`
}
