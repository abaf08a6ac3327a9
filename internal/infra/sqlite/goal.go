package sqlite

import (
	"database/sql"
	"time"

	"github.com/questlog/questlog/internal/domain"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// CreateGoal stores a goal. Progress is never stored; it is derived from
// activities at read time.
func (d *DB) CreateGoal(g domain.Goal) (domain.Goal, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	res, err := d.db.Exec(
		`INSERT INTO goals (user_id, category, title, target_hours, timeframe, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.UserID, string(g.Category), g.Title, g.TargetHours, string(g.Timeframe), g.CreatedAt.Unix(),
	)
	if err != nil {
		return g, err
	}
	g.ID, err = res.LastInsertId()
	return g, err
}

// GetGoal retrieves one goal, or ErrGoalNotFound.
func (d *DB) GetGoal(id int64) (domain.Goal, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, category, title, target_hours, timeframe, created_at FROM goals WHERE id = ?`, id,
	)
	g, err := scanGoal(row)
	if err != nil {
		return domain.Goal{}, err
	}
	if g == nil {
		return domain.Goal{}, domain.ErrGoalNotFound
	}
	return *g, nil
}

// ListGoals returns a user's goals, newest first.
func (d *DB) ListGoals(userID int64) ([]domain.Goal, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, category, title, target_hours, timeframe, created_at
		 FROM goals WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal owned by userID.
func (d *DB) DeleteGoal(id, userID int64) error {
	g, err := d.GetGoal(id)
	if err != nil {
		return err
	}
	if g.UserID != userID {
		return domain.ErrNotOwner
	}
	_, err = d.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	return err
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var category, timeframe string
	var createdAt int64

	err := s.Scan(&g.ID, &g.UserID, &category, &g.Title, &g.TargetHours, &timeframe, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.Category = domain.Category(category)
	g.Timeframe = domain.Timeframe(timeframe)
	g.CreatedAt = time.Unix(createdAt, 0)
	return &g, nil
}
