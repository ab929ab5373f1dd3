package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// VehicleRepository implements port.VehicleRepository
type VehicleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVehicleRepository creates a new pool vehicle repository
func NewVehicleRepository(db *sql.DB, logger *zap.Logger) port.VehicleRepository {
	return &VehicleRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new pool vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *entity.PoolVehicle) error {
	query := `
		INSERT INTO pool_vehicles (name, registration, make, model, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		vehicle.Name,
		vehicle.Registration,
		vehicle.Make,
		vehicle.Model,
		vehicle.Active,
		vehicle.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create vehicle", zap.String("name", vehicle.Name), zap.Error(err))
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	vehicle.ID = id
	return nil
}

// GetByID retrieves a pool vehicle by ID
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*entity.PoolVehicle, error) {
	query := `SELECT id, name, registration, make, model, active, created_at FROM pool_vehicles WHERE id = ?`

	var vehicle entity.PoolVehicle
	var registration, vehicleMake, model sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Name,
		&registration,
		&vehicleMake,
		&model,
		&vehicle.Active,
		&vehicle.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get vehicle by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	vehicle.Registration = registration.String
	vehicle.Make = vehicleMake.String
	vehicle.Model = model.String
	return &vehicle, nil
}

// List retrieves active pool vehicles with pagination
func (r *VehicleRepository) List(ctx context.Context, limit, offset int) ([]*entity.PoolVehicle, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, registration, make, model, active, created_at
		FROM pool_vehicles
		WHERE active = 1
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.PoolVehicle
	for rows.Next() {
		var vehicle entity.PoolVehicle
		var registration, vehicleMake, model sql.NullString

		if err := rows.Scan(&vehicle.ID, &vehicle.Name, &registration, &vehicleMake, &model, &vehicle.Active, &vehicle.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicle.Registration = registration.String
		vehicle.Make = vehicleMake.String
		vehicle.Model = model.String
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, rows.Err()
}

// Deactivate retires a pool vehicle
func (r *VehicleRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE pool_vehicles SET active = 0 WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate vehicle", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to deactivate vehicle: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.VehicleRepository = (*VehicleRepository)(nil)
