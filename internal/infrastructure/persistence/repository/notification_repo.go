package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification outbox repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a notification outbox row
func (r *NotificationRepository) Create(ctx context.Context, n *entity.NotificationRecord) error {
	query := `
		INSERT INTO notifications (
			request_id, recipient, kind, template, subject, body,
			status, error_message, sent_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		n.RequestID,
		n.Recipient,
		n.Kind,
		n.Template,
		n.Subject,
		n.Body,
		n.Status,
		n.ErrorMessage,
		n.SentAt,
		n.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create notification record", zap.Int64("request_id", n.RequestID), zap.Error(err))
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	n.ID = id
	return nil
}

// GetByRequestID retrieves the notifications recorded for a request
func (r *NotificationRepository) GetByRequestID(ctx context.Context, requestID int64) ([]*entity.NotificationRecord, error) {
	query := `
		SELECT id, request_id, recipient, kind, template, subject, body,
			status, error_message, sent_at, created_at
		FROM notifications
		WHERE request_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, requestID)
	if err != nil {
		r.logger.Error("Failed to get notifications", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var records []*entity.NotificationRecord
	for rows.Next() {
		var n entity.NotificationRecord
		var errorMessage sql.NullString
		var sentAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.RequestID,
			&n.Recipient,
			&n.Kind,
			&n.Template,
			&n.Subject,
			&n.Body,
			&n.Status,
			&errorMessage,
			&sentAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification record: %w", err)
		}

		n.ErrorMessage = errorMessage.String
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}
		records = append(records, &n)
	}

	return records, rows.Err()
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
