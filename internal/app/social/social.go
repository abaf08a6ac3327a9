// Package social implements friendships and head-to-head challenges.
// Challenge scores are derived from each participant's activities inside the
// challenge window; nothing per-side is stored until settlement.
package social

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questlog/questlog/internal/app/analytics"
	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/infra/sqlite"
)

// Service wires friendship and challenge operations over storage.
type Service struct {
	db *sqlite.DB
}

// NewService creates a social service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// ─── Friendships ────────────────────────────────────────────────────────────

// RequestFriend creates a pending directed request.
func (s *Service) RequestFriend(requesterID, receiverID int64) (domain.Friendship, error) {
	if requesterID == receiverID {
		return domain.Friendship{}, fmt.Errorf("cannot befriend yourself")
	}
	if _, err := s.db.GetUser(receiverID); err != nil {
		return domain.Friendship{}, err
	}
	return s.db.CreateFriendRequest(requesterID, receiverID)
}

// AcceptFriend accepts a pending request; only the receiver may.
func (s *Service) AcceptFriend(friendshipID, receiverID int64) error {
	return s.db.AcceptFriendRequest(friendshipID, receiverID)
}

// Friends returns the accepted friends of a user.
func (s *Service) Friends(userID int64) ([]domain.User, error) {
	ids, err := s.db.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	friends := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.db.GetUser(id)
		if err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, nil
}

// Requests returns every friendship row touching the user, pending included.
func (s *Service) Requests(userID int64) ([]domain.Friendship, error) {
	return s.db.ListFriendships(userID)
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// CreateChallenge issues a pending challenge. The window stays unset until
// the opponent accepts.
func (s *Service) CreateChallenge(creatorID, opponentID int64, category domain.Category, timeframe domain.Timeframe) (domain.Challenge, error) {
	if creatorID == opponentID {
		return domain.Challenge{}, fmt.Errorf("cannot challenge yourself")
	}
	if _, err := s.db.GetUser(opponentID); err != nil {
		return domain.Challenge{}, err
	}
	if timeframe != domain.TimeframeWeekly && timeframe != domain.TimeframeMonthly {
		timeframe = domain.TimeframeWeekly
	}

	c := domain.Challenge{
		ID:         uuid.NewString(),
		CreatorID:  creatorID,
		OpponentID: opponentID,
		Category:   category,
		Timeframe:  timeframe,
		Status:     domain.ChallengePending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.CreateChallenge(c); err != nil {
		return domain.Challenge{}, err
	}
	return c, nil
}

// AcceptChallenge activates a pending challenge; the window runs from the
// accept instant for the challenge timeframe.
func (s *Service) AcceptChallenge(id string, opponentID int64, now time.Time) (domain.Challenge, error) {
	c, err := s.db.GetChallenge(id)
	if err != nil {
		return domain.Challenge{}, err
	}
	if c.OpponentID != opponentID {
		return domain.Challenge{}, domain.ErrNotOwner
	}
	if c.Status != domain.ChallengePending {
		return domain.Challenge{}, fmt.Errorf("challenge is %s, not pending", c.Status)
	}

	startsAt := now.UTC()
	endsAt := startsAt.Add(7 * 24 * time.Hour)
	if c.Timeframe == domain.TimeframeMonthly {
		endsAt = startsAt.AddDate(0, 1, 0)
	}
	if err := s.db.ActivateChallenge(id, startsAt, endsAt); err != nil {
		return domain.Challenge{}, err
	}
	return s.db.GetChallenge(id)
}

// Standing returns a challenge with live derived scores for both sides.
func (s *Service) Standing(c domain.Challenge) (domain.ChallengeStanding, error) {
	creatorScore, err := s.sideScore(c.CreatorID, c)
	if err != nil {
		return domain.ChallengeStanding{}, err
	}
	opponentScore, err := s.sideScore(c.OpponentID, c)
	if err != nil {
		return domain.ChallengeStanding{}, err
	}
	return domain.ChallengeStanding{
		Challenge:     c,
		CreatorScore:  creatorScore,
		OpponentScore: opponentScore,
	}, nil
}

// Settle completes a challenge once its window has closed. Higher score
// wins; a tie leaves winner_id unset.
func (s *Service) Settle(id string, callerID int64, now time.Time) (domain.ChallengeStanding, error) {
	c, err := s.db.GetChallenge(id)
	if err != nil {
		return domain.ChallengeStanding{}, err
	}
	if callerID != c.CreatorID && callerID != c.OpponentID {
		return domain.ChallengeStanding{}, domain.ErrNotOwner
	}
	if c.Status != domain.ChallengeActive {
		return domain.ChallengeStanding{}, fmt.Errorf("challenge is %s, not active", c.Status)
	}
	if now.Before(c.EndsAt) {
		return domain.ChallengeStanding{}, fmt.Errorf("challenge window closes at %s", c.EndsAt.Format(time.RFC3339))
	}

	standing, err := s.Standing(c)
	if err != nil {
		return domain.ChallengeStanding{}, err
	}

	var winner *int64
	switch {
	case standing.CreatorScore > standing.OpponentScore:
		winner = &c.CreatorID
	case standing.OpponentScore > standing.CreatorScore:
		winner = &c.OpponentID
	}
	if err := s.db.CompleteChallenge(id, winner); err != nil {
		return domain.ChallengeStanding{}, err
	}

	standing.Challenge, err = s.db.GetChallenge(id)
	return standing, err
}

// SettleExpired completes every active challenge whose window has closed.
// The daemon runs this periodically so outcomes land without either
// participant calling settle. Returns the number of challenges settled.
func (s *Service) SettleExpired(now time.Time) (int, error) {
	expired, err := s.db.ExpiredActiveChallenges(now)
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, c := range expired {
		standing, err := s.Standing(c)
		if err != nil {
			return settled, err
		}
		var winner *int64
		switch {
		case standing.CreatorScore > standing.OpponentScore:
			winner = &c.CreatorID
		case standing.OpponentScore > standing.CreatorScore:
			winner = &c.OpponentID
		}
		if err := s.db.CompleteChallenge(c.ID, winner); err != nil {
			return settled, err
		}
		settled++
	}
	return settled, nil
}

// Challenges lists a user's challenges with live standings.
func (s *Service) Challenges(userID int64) ([]domain.ChallengeStanding, error) {
	list, err := s.db.ListChallenges(userID)
	if err != nil {
		return nil, err
	}
	standings := make([]domain.ChallengeStanding, 0, len(list))
	for _, c := range list {
		st, err := s.Standing(c)
		if err != nil {
			return nil, err
		}
		standings = append(standings, st)
	}
	return standings, nil
}

// sideScore sums one participant's productivity score inside the challenge
// window, restricted to the challenge category when set. Pending challenges
// have no window yet and score zero.
func (s *Service) sideScore(userID int64, c domain.Challenge) (float64, error) {
	if c.Status == domain.ChallengePending {
		return 0, nil
	}
	activities, err := s.db.ListActivitiesBetween(userID, c.StartsAt, c.EndsAt)
	if err != nil {
		return 0, err
	}
	if c.Category != "" {
		filtered := activities[:0]
		for _, a := range activities {
			if a.Category == c.Category {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}
	agg := analytics.Aggregate(activities, c.StartsAt, c.EndsAt)
	return agg.TotalScore, nil
}
