// internal/notification/repository.go

package notification

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.Link,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*Notification, error) {
	var notifications []*Notification
	query := `
		SELECT id, user_id, type, title, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	return notifications, err
}

// MarkRead is scoped to the owner so members cannot mark others' rows
func (r *postgresRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, notificationID, userID)
	return err
}

func (r *postgresRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
