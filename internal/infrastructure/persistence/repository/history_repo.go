package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// HistoryRepository implements port.HistoryRepository. The table is
// append-only; there is no update or delete path.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a history entry
func (r *HistoryRepository) Create(ctx context.Context, h *entity.RequestHistory) error {
	query := `
		INSERT INTO request_history (
			request_id, actor_id, previous_state, new_state, action, note, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		h.RequestID,
		h.ActorID,
		h.PreviousState,
		h.NewState,
		h.Action,
		h.Note,
		h.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create history entry", zap.Int64("request_id", h.RequestID), zap.Error(err))
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	h.ID = id
	return nil
}

// GetByRequestID retrieves the full audit trail of a request, oldest first
func (r *HistoryRepository) GetByRequestID(ctx context.Context, requestID int64) ([]*entity.RequestHistory, error) {
	query := `
		SELECT id, request_id, actor_id, previous_state, new_state, action, note, timestamp
		FROM request_history
		WHERE request_id = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, requestID)
	if err != nil {
		r.logger.Error("Failed to get history", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.RequestHistory
	for rows.Next() {
		var h entity.RequestHistory
		var previousState, note sql.NullString

		err := rows.Scan(
			&h.ID,
			&h.RequestID,
			&h.ActorID,
			&previousState,
			&h.NewState,
			&h.Action,
			&note,
			&h.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		h.PreviousState = previousState.String
		h.Note = note.String
		entries = append(entries, &h)
	}

	return entries, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
