package domain

import "time"

// ─── Friendships ────────────────────────────────────────────────────────────

// FriendshipStatus is the state of a directed friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed request; symmetric once accepted.
type Friendship struct {
	ID          int64            `json:"id"`
	RequesterID int64            `json:"requester_id"`
	ReceiverID  int64            `json:"receiver_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengeStatus is the lifecycle state of a challenge.
type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
)

// Challenge is a head-to-head score contest. The window is fixed when the
// opponent accepts; scores per side are derived from each participant's
// activities inside the window, never stored.
type Challenge struct {
	ID         string          `json:"id"` // uuid
	CreatorID  int64           `json:"creator_id"`
	OpponentID int64           `json:"opponent_id"`
	Category   Category        `json:"category,omitempty"` // empty = all categories
	Timeframe  Timeframe       `json:"timeframe"`
	Status     ChallengeStatus `json:"status"`
	WinnerID   *int64          `json:"winner_id,omitempty"` // nil while running or on a tie
	CreatedAt  time.Time       `json:"created_at"`
	StartsAt   time.Time       `json:"starts_at"`
	EndsAt     time.Time       `json:"ends_at"`
}

// ChallengeStanding is a challenge with live derived scores for both sides.
type ChallengeStanding struct {
	Challenge     Challenge `json:"challenge"`
	CreatorScore  float64   `json:"creator_score"`
	OpponentScore float64   `json:"opponent_score"`
}

// ─── Leaderboard ────────────────────────────────────────────────────────────

// LeaderboardEntry is one ranked row. Ranking policy: standard competition
// ranking — ties share a rank, the next distinct score resumes at its
// positional rank ([10,10,5] -> [1,1,3]); tie groups order by user id.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	AvatarColor string  `json:"avatar_color"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
	IsSelf      bool    `json:"is_self"`
}
