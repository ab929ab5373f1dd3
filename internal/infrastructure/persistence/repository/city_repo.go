package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// CityRepository implements port.CityRepository
type CityRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCityRepository creates a new city repository
func NewCityRepository(db *sql.DB, logger *zap.Logger) port.CityRepository {
	return &CityRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new city
func (r *CityRepository) Create(ctx context.Context, city *entity.City) error {
	query := `
		INSERT INTO cities (name, country_code, postal_code, active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		city.Name,
		city.CountryCode,
		city.PostalCode,
		city.Active,
		city.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create city", zap.String("name", city.Name), zap.Error(err))
		return fmt.Errorf("failed to create city: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	city.ID = id
	return nil
}

// GetByID retrieves a city by ID
func (r *CityRepository) GetByID(ctx context.Context, id int64) (*entity.City, error) {
	query := `SELECT id, name, country_code, postal_code, active, created_at FROM cities WHERE id = ?`

	var city entity.City
	var postalCode sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.CountryCode,
		&postalCode,
		&city.Active,
		&city.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get city by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get city: %w", err)
	}

	city.PostalCode = postalCode.String
	return &city, nil
}

// List retrieves active cities with pagination
func (r *CityRepository) List(ctx context.Context, limit, offset int) ([]*entity.City, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, country_code, postal_code, active, created_at
		FROM cities
		WHERE active = 1
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list cities", zap.Error(err))
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []*entity.City
	for rows.Next() {
		var city entity.City
		var postalCode sql.NullString

		if err := rows.Scan(&city.ID, &city.Name, &city.CountryCode, &postalCode, &city.Active, &city.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		city.PostalCode = postalCode.String
		cities = append(cities, &city)
	}

	return cities, rows.Err()
}

// Deactivate retires a city from the catalog
func (r *CityRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE cities SET active = 0 WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate city", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to deactivate city: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.CityRepository = (*CityRepository)(nil)
