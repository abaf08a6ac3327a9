package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/questlog/questlog/internal/domain"
)

// ─── Activities ─────────────────────────────────────────────────────────────

// LogActivity inserts an activity and applies its XP and chest-credit grants
// in one transaction, so the stored running totals stay consistent with the
// sum of per-activity awards even under concurrent submissions.
func (d *DB) LogActivity(a domain.Activity, xp, credits int64) (id, oldXP, newXP int64, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, 0, 0, err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`SELECT xp FROM users WHERE id = ?`, a.UserID).Scan(&oldXP); err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, 0, domain.ErrUserNotFound
		}
		return 0, 0, 0, err
	}

	res, err := tx.Exec(
		`INSERT INTO activities (user_id, activity_name, category, duration_minutes, timestamp, productivity_score, is_focus_session)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Name, string(a.Category), a.DurationMin, a.Timestamp.Unix(), a.Score, a.IsFocusSession,
	)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("insert activity: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, 0, 0, err
	}

	if _, err := tx.Exec(
		`UPDATE users SET xp = xp + ?, chest_credits = chest_credits + ? WHERE id = ?`,
		xp, credits, a.UserID,
	); err != nil {
		return 0, 0, 0, fmt.Errorf("award xp: %w", err)
	}

	return id, oldXP, oldXP + xp, tx.Commit()
}

// GetActivity retrieves one activity, or ErrActivityNotFound.
func (d *DB) GetActivity(id int64) (domain.Activity, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, activity_name, category, duration_minutes, timestamp, productivity_score, is_focus_session
		 FROM activities WHERE id = ?`, id,
	)
	a, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, err
	}
	if a == nil {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return *a, nil
}

// UpdateActivity mutates name, duration, category and the re-derived score.
// Only the owning user may edit.
func (d *DB) UpdateActivity(id, userID int64, name string, category domain.Category, durationMin int, score float64) error {
	existing, err := d.GetActivity(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotOwner
	}

	_, err = d.db.Exec(
		`UPDATE activities SET activity_name = ?, category = ?, duration_minutes = ?, productivity_score = ? WHERE id = ?`,
		name, string(category), durationMin, score, id,
	)
	return err
}

// DeleteActivity removes an activity owned by userID.
func (d *DB) DeleteActivity(id, userID int64) error {
	existing, err := d.GetActivity(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotOwner
	}
	_, err = d.db.Exec(`DELETE FROM activities WHERE id = ?`, id)
	return err
}

// ListActivities returns a user's full history, newest first.
func (d *DB) ListActivities(userID int64) ([]domain.Activity, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, activity_name, category, duration_minutes, timestamp, productivity_score, is_focus_session
		 FROM activities WHERE user_id = ? ORDER BY timestamp DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ListActivitiesBetween returns a user's activities in [from, to), oldest first.
func (d *DB) ListActivitiesBetween(userID int64, from, to time.Time) ([]domain.Activity, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, activity_name, category, duration_minutes, timestamp, productivity_score, is_focus_session
		 FROM activities WHERE user_id = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp`,
		userID, from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ScoresBetween sums productivity scores per user over [from, to). Feeds the
// leaderboard; one query for the whole cohort.
func (d *DB) ScoresBetween(from, to time.Time) (map[int64]float64, error) {
	rows, err := d.db.Query(
		`SELECT user_id, SUM(productivity_score) FROM activities
		 WHERE timestamp >= ? AND timestamp < ? GROUP BY user_id`,
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[int64]float64)
	for rows.Next() {
		var userID int64
		var score float64
		if err := rows.Scan(&userID, &score); err != nil {
			return nil, err
		}
		scores[userID] = score
	}
	return scores, rows.Err()
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanActivity(s scanner) (*domain.Activity, error) {
	var a domain.Activity
	var category string
	var ts int64

	err := s.Scan(&a.ID, &a.UserID, &a.Name, &category, &a.DurationMin, &ts, &a.Score, &a.IsFocusSession)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Category = domain.Category(category)
	a.Timestamp = time.Unix(ts, 0).UTC()
	return &a, nil
}

func collectActivities(rows *sql.Rows) ([]domain.Activity, error) {
	defer rows.Close()
	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
