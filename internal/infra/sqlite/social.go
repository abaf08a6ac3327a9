package sqlite

import (
	"database/sql"
	"time"

	"github.com/questlog/questlog/internal/domain"
)

// ─── Friendships ────────────────────────────────────────────────────────────

// CreateFriendRequest inserts a pending directed request. A request in
// either direction between the same pair is a duplicate.
func (d *DB) CreateFriendRequest(requesterID, receiverID int64) (domain.Friendship, error) {
	var f domain.Friendship

	var exists int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM friendships
		 WHERE (requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)`,
		requesterID, receiverID, receiverID, requesterID,
	).Scan(&exists)
	if err != nil {
		return f, err
	}
	if exists > 0 {
		return f, domain.ErrDuplicateFriendship
	}

	now := time.Now()
	res, err := d.db.Exec(
		`INSERT INTO friendships (requester_id, receiver_id, status, created_at) VALUES (?, ?, 'pending', ?)`,
		requesterID, receiverID, now.Unix(),
	)
	if err != nil {
		return f, err
	}
	f.ID, _ = res.LastInsertId()
	f.RequesterID = requesterID
	f.ReceiverID = receiverID
	f.Status = domain.FriendshipPending
	f.CreatedAt = now
	return f, nil
}

// AcceptFriendRequest flips a pending request to accepted. Only the receiver
// may accept.
func (d *DB) AcceptFriendRequest(id, receiverID int64) error {
	res, err := d.db.Exec(
		`UPDATE friendships SET status = 'accepted' WHERE id = ? AND receiver_id = ? AND status = 'pending'`,
		id, receiverID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNotOwner
	}
	return nil
}

// FriendIDs returns the ids of everyone in an accepted friendship with the
// user, in either direction.
func (d *DB) FriendIDs(userID int64) ([]int64, error) {
	rows, err := d.db.Query(
		`SELECT CASE WHEN requester_id = ? THEN receiver_id ELSE requester_id END
		 FROM friendships
		 WHERE status = 'accepted' AND (requester_id = ? OR receiver_id = ?)`,
		userID, userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListFriendships returns every friendship row touching the user.
func (d *DB) ListFriendships(userID int64) ([]domain.Friendship, error) {
	rows, err := d.db.Query(
		`SELECT id, requester_id, receiver_id, status, created_at
		 FROM friendships WHERE requester_id = ? OR receiver_id = ? ORDER BY created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		var status string
		var createdAt int64
		if err := rows.Scan(&f.ID, &f.RequesterID, &f.ReceiverID, &status, &createdAt); err != nil {
			return nil, err
		}
		f.Status = domain.FriendshipStatus(status)
		f.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, f)
	}
	return out, rows.Err()
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// CreateChallenge stores a pending challenge.
func (d *DB) CreateChallenge(c domain.Challenge) error {
	_, err := d.db.Exec(
		`INSERT INTO challenges (id, creator_id, opponent_id, category, timeframe, status, winner_id, created_at, starts_at, ends_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, ?, ?, ?)`,
		c.ID, c.CreatorID, c.OpponentID, string(c.Category), string(c.Timeframe), string(c.Status),
		c.CreatedAt.Unix(), c.StartsAt.Unix(), c.EndsAt.Unix(),
	)
	return err
}

// GetChallenge retrieves one challenge, or ErrChallengeNotFound.
func (d *DB) GetChallenge(id string) (domain.Challenge, error) {
	row := d.db.QueryRow(
		`SELECT id, creator_id, opponent_id, category, timeframe, status, winner_id, created_at, starts_at, ends_at
		 FROM challenges WHERE id = ?`, id,
	)
	c, err := scanChallenge(row)
	if err != nil {
		return domain.Challenge{}, err
	}
	if c == nil {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return *c, nil
}

// ActivateChallenge moves a pending challenge to active and fixes its window.
func (d *DB) ActivateChallenge(id string, startsAt, endsAt time.Time) error {
	res, err := d.db.Exec(
		`UPDATE challenges SET status = 'active', starts_at = ?, ends_at = ? WHERE id = ? AND status = 'pending'`,
		startsAt.Unix(), endsAt.Unix(), id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

// CompleteChallenge records the outcome. winnerID nil means a tie.
func (d *DB) CompleteChallenge(id string, winnerID *int64) error {
	var winner sql.NullInt64
	if winnerID != nil {
		winner = sql.NullInt64{Int64: *winnerID, Valid: true}
	}
	_, err := d.db.Exec(
		`UPDATE challenges SET status = 'completed', winner_id = ? WHERE id = ?`, winner, id,
	)
	return err
}

// ListChallenges returns every challenge involving the user, newest first.
func (d *DB) ListChallenges(userID int64) ([]domain.Challenge, error) {
	rows, err := d.db.Query(
		`SELECT id, creator_id, opponent_id, category, timeframe, status, winner_id, created_at, starts_at, ends_at
		 FROM challenges WHERE creator_id = ? OR opponent_id = ? ORDER BY created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ExpiredActiveChallenges returns active challenges whose window has closed.
func (d *DB) ExpiredActiveChallenges(now time.Time) ([]domain.Challenge, error) {
	rows, err := d.db.Query(
		`SELECT id, creator_id, opponent_id, category, timeframe, status, winner_id, created_at, starts_at, ends_at
		 FROM challenges WHERE status = 'active' AND ends_at <= ? ORDER BY ends_at`,
		now.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanChallenge(s scanner) (*domain.Challenge, error) {
	var c domain.Challenge
	var category, timeframe, status string
	var winner sql.NullInt64
	var createdAt, startsAt, endsAt int64

	err := s.Scan(&c.ID, &c.CreatorID, &c.OpponentID, &category, &timeframe, &status,
		&winner, &createdAt, &startsAt, &endsAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Category = domain.Category(category)
	c.Timeframe = domain.Timeframe(timeframe)
	c.Status = domain.ChallengeStatus(status)
	if winner.Valid {
		w := winner.Int64
		c.WinnerID = &w
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	c.StartsAt = time.Unix(startsAt, 0).UTC()
	c.EndsAt = time.Unix(endsAt, 0).UTC()
	return &c, nil
}
