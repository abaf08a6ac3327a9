package domain

import "errors"

// Sentinel errors shared across layers.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrNotOwner            = errors.New("resource owned by another user")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateFriendship = errors.New("friend request already exists")
	ErrInsufficientCredits = errors.New("insufficient chest credits")
	ErrInvalidDuration     = errors.New("duration must be positive")
)
