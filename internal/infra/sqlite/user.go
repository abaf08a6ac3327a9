package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/questlog/questlog/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// CreateUser registers a new user and returns it with its assigned id.
func (d *DB) CreateUser(u domain.User) (domain.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	existing, err := d.GetUserByEmail(u.Email)
	if err != nil {
		return u, err
	}
	if existing != nil {
		return u, domain.ErrDuplicateEmail
	}

	res, err := d.db.Exec(
		`INSERT INTO users (email, name, avatar_color, bio, birth_year, xp, chest_credits, is_public, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		u.Email, u.Name, u.AvatarColor, u.Bio, nullableInt(u.BirthYear), u.IsPublic, u.CreatedAt.Unix(),
	)
	if err != nil {
		return u, fmt.Errorf("insert user: %w", err)
	}
	u.ID, err = res.LastInsertId()
	u.XP, u.ChestCredits = 0, 0
	return u, err
}

// GetUser retrieves a user by id, or ErrUserNotFound.
func (d *DB) GetUser(id int64) (domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, email, name, avatar_color, bio, birth_year, xp, chest_credits, is_public, created_at
		 FROM users WHERE id = ?`, id,
	)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, err
	}
	if u == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *u, nil
}

// GetUserByEmail retrieves a user by email; nil when absent.
func (d *DB) GetUserByEmail(email string) (*domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, email, name, avatar_color, bio, birth_year, xp, chest_credits, is_public, created_at
		 FROM users WHERE email = ?`, email,
	)
	return scanUser(row)
}

// UpdateProfile mutates the caller-editable profile fields.
func (d *DB) UpdateProfile(id int64, name, avatarColor, bio string, isPublic bool) error {
	res, err := d.db.Exec(
		`UPDATE users SET name = ?, avatar_color = ?, bio = ?, is_public = ? WHERE id = ?`,
		name, avatarColor, bio, isPublic, id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListPublicUsers returns every user with is_public = 1.
func (d *DB) ListPublicUsers() ([]domain.User, error) {
	rows, err := d.db.Query(
		`SELECT id, email, name, avatar_color, bio, birth_year, xp, chest_credits, is_public, created_at
		 FROM users WHERE is_public = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// AwardXP applies an XP and chest-credit grant as one read-modify-write
// transaction. This is the lost-update-sensitive path: two near-simultaneous
// activity logs for the same user must both land.
func (d *DB) AwardXP(userID, xp, credits int64) (oldXP, newXP int64, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`SELECT xp FROM users WHERE id = ?`, userID).Scan(&oldXP); err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, domain.ErrUserNotFound
		}
		return 0, 0, err
	}

	if _, err := tx.Exec(
		`UPDATE users SET xp = xp + ?, chest_credits = chest_credits + ? WHERE id = ?`,
		xp, credits, userID,
	); err != nil {
		return 0, 0, fmt.Errorf("award xp: %w", err)
	}

	return oldXP, oldXP + xp, tx.Commit()
}

// SpendChestCredits deducts the chest cost inside a transaction, failing
// with ErrInsufficientCredits before any write when the balance is short.
func (d *DB) SpendChestCredits(userID, cost int64) (remaining int64, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance int64
	if err := tx.QueryRow(`SELECT chest_credits FROM users WHERE id = ?`, userID).Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	if balance < cost {
		return balance, domain.ErrInsufficientCredits
	}

	if _, err := tx.Exec(
		`UPDATE users SET chest_credits = chest_credits - ? WHERE id = ?`, cost, userID,
	); err != nil {
		return 0, err
	}

	return balance - cost, tx.Commit()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var birthYear sql.NullInt64
	var createdAt int64

	err := s.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarColor, &u.Bio,
		&birthYear, &u.XP, &u.ChestCredits, &u.IsPublic, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	if birthYear.Valid {
		u.BirthYear = int(birthYear.Int64)
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}

func nullableInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
