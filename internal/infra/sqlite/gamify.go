package sqlite

import (
	"time"

	"github.com/questlog/questlog/internal/domain"
)

// ─── Badges ─────────────────────────────────────────────────────────────────

// EarnBadge records a badge as earned. Returns false when the user already
// holds it (idempotent; re-earning is a no-op).
func (d *DB) EarnBadge(userID int64, badge string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_badges (user_id, badge, earned_at) VALUES (?, ?, ?)`,
		userID, badge, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListEarnedBadges returns a user's badges, newest first.
func (d *DB) ListEarnedBadges(userID int64) ([]domain.EarnedBadge, error) {
	rows, err := d.db.Query(
		`SELECT user_id, badge, earned_at FROM user_badges WHERE user_id = ? ORDER BY earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var earnedAt int64
		if err := rows.Scan(&b.UserID, &b.Badge, &earnedAt); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(earnedAt, 0)
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// BadgeCount returns how many badges a user has earned.
func (d *DB) BadgeCount(userID int64) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM user_badges WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// ─── Items ──────────────────────────────────────────────────────────────────

// GrantItem increments a user's ownership count for a catalog item.
func (d *DB) GrantItem(userID int64, itemID string) error {
	_, err := d.db.Exec(
		`INSERT INTO user_items (user_id, item_id, count, is_broken) VALUES (?, ?, 1, 0)
		 ON CONFLICT(user_id, item_id) DO UPDATE SET count = count + 1`,
		userID, itemID,
	)
	return err
}

// ListItems returns a user's owned items.
func (d *DB) ListItems(userID int64) ([]domain.OwnedItem, error) {
	rows, err := d.db.Query(
		`SELECT user_id, item_id, count, is_broken FROM user_items WHERE user_id = ? ORDER BY item_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OwnedItem
	for rows.Next() {
		var it domain.OwnedItem
		if err := rows.Scan(&it.UserID, &it.ItemID, &it.Count, &it.IsBroken); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetItemBroken flips the broken flag on an owned item.
func (d *DB) SetItemBroken(userID int64, itemID string, broken bool) error {
	_, err := d.db.Exec(
		`UPDATE user_items SET is_broken = ? WHERE user_id = ? AND item_id = ?`,
		broken, userID, itemID,
	)
	return err
}
