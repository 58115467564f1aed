package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO notifications (customer_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	n.CreatedOn = time.Now()
	return conn(ctx, r.db).QueryRowContext(ctx, query, n.CustomerID, n.Title, n.Message, n.IsRead, attrs, n.CreatedOn).Scan(&n.ID)
}

func (r *notificationRepository) List(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE customer_id = $1`
	if err := conn(ctx, r.db).QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, customer_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.CustomerID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) ExistsWithAttributes(ctx context.Context, customerID uuid.UUID, attrs map[string]string, since time.Time) (bool, error) {
	want, err := json.Marshal(attrs)
	if err != nil {
		return false, err
	}

	query := `SELECT count(*) FROM notifications
	          WHERE customer_id = $1 AND created_on >= $2 AND attributes::jsonb @> $3::jsonb`
	var n int
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, customerID, since, want).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64, customerID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND customer_id = $2`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, id, customerID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification not found or access denied")
	}
	return nil
}
