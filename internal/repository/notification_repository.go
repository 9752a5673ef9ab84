package repository

import (
	"context"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

// NotificationRepository is the append-only event log shown on the monitor
// screen: debits, stage moves, releases, onboarding.
type NotificationRepository struct {
	DB *db.Postgres
}

func (r NotificationRepository) Append(ctx context.Context, message string) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO notifications (message, created_at) VALUES ($1, now())
	`, message)
	return err
}

func (r NotificationRepository) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, message, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
