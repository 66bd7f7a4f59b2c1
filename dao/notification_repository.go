package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"marketplace-backend/model"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	var data any
	if len(n.Data) > 0 {
		raw, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("marshal notification data: %w", err)
		}
		data = string(raw)
	}
	query := `INSERT INTO notifications (id, user_id, type, title, message, data, read_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Type, n.Title, n.Message, data, nullTime(n.ReadAt), n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

const maxNotificationPage = 100000

// ListByUser returns one page of the user's notifications, newest first, and
// the total count matching the filter.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, filter model.NotificationFilter) ([]model.Notification, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	// Keeps the offset far from int overflow.
	if page > maxNotificationPage {
		page = maxNotificationPage
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	where := `user_id = ?`
	if filter.UnreadOnly {
		where += ` AND read_at IS NULL`
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := `SELECT id, user_id, type, title, message, data, read_at, created_at FROM notifications WHERE ` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var (
			n      model.Notification
			data   sql.NullString
			readAt sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &readAt, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		if data.Valid && data.String != "" {
			if err := json.Unmarshal([]byte(data.String), &n.Data); err != nil {
				return nil, 0, fmt.Errorf("decode notification %s data: %w", n.ID, err)
			}
		}
		n.ReadAt = timePtr(readAt)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return out, total, nil
}

// MarkAsRead is a no-op for notifications already read. It returns
// ErrNotFound when the notification does not belong to the user.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read_at = COALESCE(read_at, UTC_TIMESTAMP(3)) WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
