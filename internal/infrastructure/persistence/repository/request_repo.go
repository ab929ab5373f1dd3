package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// TravelRequestRepository implements port.TravelRequestRepository
type TravelRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTravelRequestRepository creates a new travel request repository
func NewTravelRequestRepository(db *sql.DB, logger *zap.Logger) port.TravelRequestRepository {
	return &TravelRequestRepository{
		db:     db,
		logger: logger,
	}
}

const requestColumns = `
	id, reference, employee_id, employee_name, manager_id,
	start_date, end_date, city_id, transport_mode, distance_km, vehicle_id,
	travel_class, duration_days, is_international, estimated_cost, currency,
	mission_purpose, mission_order_ref, mission_order_filename,
	state, refusal_reason, org_unit, active, created_at, updated_at
`

// Create inserts a new travel request
func (r *TravelRequestRepository) Create(ctx context.Context, req *entity.TravelRequest) error {
	query := `
		INSERT INTO travel_requests (
			reference, employee_id, employee_name, manager_id,
			start_date, end_date, city_id, transport_mode, distance_km, vehicle_id,
			travel_class, duration_days, is_international, estimated_cost, currency,
			mission_purpose, mission_order_ref, mission_order_filename,
			state, refusal_reason, org_unit, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		req.Reference,
		req.EmployeeID,
		req.EmployeeName,
		req.ManagerID,
		req.StartDate,
		req.EndDate,
		req.CityID,
		req.TransportMode,
		req.DistanceKm,
		req.VehicleID,
		req.TravelClass,
		req.DurationDays,
		req.International,
		req.EstimatedCost,
		req.Currency,
		req.MissionPurpose,
		req.MissionOrderRef,
		req.MissionOrderFilename,
		req.State,
		req.RefusalReason,
		req.OrgUnit,
		req.Active,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create travel request", zap.Error(err))
		return fmt.Errorf("failed to create travel request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	req.ID = id
	return nil
}

// GetByID retrieves a travel request by ID
func (r *TravelRequestRepository) GetByID(ctx context.Context, id int64) (*entity.TravelRequest, error) {
	query := `SELECT` + requestColumns + `FROM travel_requests WHERE id = ?`

	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get travel request by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get travel request: %w", err)
	}
	return req, nil
}

// GetByReference retrieves a travel request by its reference code
func (r *TravelRequestRepository) GetByReference(ctx context.Context, reference string) (*entity.TravelRequest, error) {
	query := `SELECT` + requestColumns + `FROM travel_requests WHERE reference = ?`

	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, reference)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get travel request by reference", zap.String("reference", reference), zap.Error(err))
		return nil, fmt.Errorf("failed to get travel request: %w", err)
	}
	return req, nil
}

// Update rewrites the editable and derived fields of a travel request. The
// reference and state are owned by AssignReference and UpdateState.
func (r *TravelRequestRepository) Update(ctx context.Context, req *entity.TravelRequest) error {
	query := `
		UPDATE travel_requests SET
			start_date = ?, end_date = ?, city_id = ?,
			transport_mode = ?, distance_km = ?, vehicle_id = ?,
			travel_class = ?, duration_days = ?, is_international = ?,
			estimated_cost = ?, currency = ?, mission_purpose = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		req.StartDate,
		req.EndDate,
		req.CityID,
		req.TransportMode,
		req.DistanceKm,
		req.VehicleID,
		req.TravelClass,
		req.DurationDays,
		req.International,
		req.EstimatedCost,
		req.Currency,
		req.MissionPurpose,
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update travel request", zap.Int64("id", req.ID), zap.Error(err))
		return fmt.Errorf("failed to update travel request: %w", err)
	}

	return nil
}

// UpdateState updates the workflow state and the refusal reason together
func (r *TravelRequestRepository) UpdateState(ctx context.Context, id int64, state, refusalReason string) error {
	query := `UPDATE travel_requests SET state = ?, refusal_reason = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, state, refusalReason, id)
	if err != nil {
		r.logger.Error("Failed to update state", zap.Int64("id", id), zap.String("state", state), zap.Error(err))
		return fmt.Errorf("failed to update state: %w", err)
	}

	return nil
}

// AssignReference replaces the placeholder reference with the definitive one.
// The WHERE clause makes a repeated assignment a no-op.
func (r *TravelRequestRepository) AssignReference(ctx context.Context, id int64, reference string) error {
	query := `UPDATE travel_requests SET reference = ? WHERE id = ? AND reference = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, reference, id, entity.ReferencePlaceholder)
	if err != nil {
		r.logger.Error("Failed to assign reference", zap.Int64("id", id), zap.String("reference", reference), zap.Error(err))
		return fmt.Errorf("failed to assign reference: %w", err)
	}

	return nil
}

// SetMissionOrder records the stored mission-order document on the request
func (r *TravelRequestRepository) SetMissionOrder(ctx context.Context, id int64, handle, filename string) error {
	query := `UPDATE travel_requests SET mission_order_ref = ?, mission_order_filename = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, handle, filename, id)
	if err != nil {
		r.logger.Error("Failed to set mission order", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set mission order: %w", err)
	}

	return nil
}

// List retrieves active travel requests matching the filter
func (r *TravelRequestRepository) List(ctx context.Context, filter port.RequestFilter) ([]*entity.TravelRequest, error) {
	query := `SELECT` + requestColumns + `FROM travel_requests WHERE active = 1`
	args := []interface{}{}

	if filter.State != "" {
		query += ` AND state = ?`
		args = append(args, filter.State)
	}
	if filter.EmployeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, filter.EmployeeID)
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list travel requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list travel requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.TravelRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan travel request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// Deactivate archives a travel request without deleting the row
func (r *TravelRequestRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE travel_requests SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate travel request", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to deactivate travel request: %w", err)
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*entity.TravelRequest, error) {
	var req entity.TravelRequest
	var vehicleID sql.NullInt64
	var travelClass, missionOrderRef, missionOrderFilename, refusalReason, orgUnit sql.NullString

	err := s.Scan(
		&req.ID,
		&req.Reference,
		&req.EmployeeID,
		&req.EmployeeName,
		&req.ManagerID,
		&req.StartDate,
		&req.EndDate,
		&req.CityID,
		&req.TransportMode,
		&req.DistanceKm,
		&vehicleID,
		&travelClass,
		&req.DurationDays,
		&req.International,
		&req.EstimatedCost,
		&req.Currency,
		&req.MissionPurpose,
		&missionOrderRef,
		&missionOrderFilename,
		&req.State,
		&refusalReason,
		&orgUnit,
		&req.Active,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if vehicleID.Valid {
		req.VehicleID = &vehicleID.Int64
	}
	req.TravelClass = travelClass.String
	req.MissionOrderRef = missionOrderRef.String
	req.MissionOrderFilename = missionOrderFilename.String
	req.RefusalReason = refusalReason.String
	req.OrgUnit = orgUnit.String

	return &req, nil
}

// Verify interface compliance
var _ port.TravelRequestRepository = (*TravelRequestRepository)(nil)
