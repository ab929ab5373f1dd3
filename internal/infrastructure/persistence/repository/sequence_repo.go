package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"go.uber.org/zap"
)

// SequenceRepository implements port.SequenceAllocator on a sqlite counter
// table. The upsert increments and reads in one statement, so concurrent
// allocations in the same namespace never hand out the same value.
type SequenceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSequenceRepository creates a new sequence allocator
func NewSequenceRepository(db *sql.DB, logger *zap.Logger) port.SequenceAllocator {
	return &SequenceRepository{
		db:     db,
		logger: logger,
	}
}

// Next allocates the next value in the namespace and renders it zero-padded
func (r *SequenceRepository) Next(ctx context.Context, namespace string) (string, error) {
	query := `
		INSERT INTO sequences (namespace, value) VALUES (?, 1)
		ON CONFLICT(namespace) DO UPDATE SET value = value + 1
		RETURNING value
	`

	var value int64
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, namespace).Scan(&value)
	if err != nil {
		r.logger.Error("Failed to allocate sequence value", zap.String("namespace", namespace), zap.Error(err))
		return "", fmt.Errorf("failed to allocate sequence value: %w", err)
	}

	return fmt.Sprintf("%05d", value), nil
}

// Verify interface compliance
var _ port.SequenceAllocator = (*SequenceRepository)(nil)
