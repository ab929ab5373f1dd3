package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"github.com/tripdesk/tripdesk/internal/domain/validation"
)

// CatalogService manages the destination and pool-vehicle master data. Both
// live independently of any travel request and are retired by deactivation,
// never deleted.
type CatalogService interface {
	CreateCity(ctx context.Context, actor entity.ActorContext, city *entity.City) error
	GetCity(ctx context.Context, id int64) (*entity.City, error)
	ListCities(ctx context.Context, limit, offset int) ([]*entity.City, error)
	DeactivateCity(ctx context.Context, actor entity.ActorContext, id int64) error

	CreateVehicle(ctx context.Context, actor entity.ActorContext, vehicle *entity.PoolVehicle) error
	GetVehicle(ctx context.Context, id int64) (*entity.PoolVehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*entity.PoolVehicle, error)
	DeactivateVehicle(ctx context.Context, actor entity.ActorContext, id int64) error
}

type catalogServiceImpl struct {
	cityRepo    port.CityRepository
	vehicleRepo port.VehicleRepository
	logger      Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(cityRepo port.CityRepository, vehicleRepo port.VehicleRepository, logger Logger) CatalogService {
	return &catalogServiceImpl{
		cityRepo:    cityRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *catalogServiceImpl) CreateCity(ctx context.Context, actor entity.ActorContext, city *entity.City) error {
	if !actor.Elevated() {
		return fmt.Errorf("%w: managing cities requires the manager role", ErrUnauthorized)
	}
	if city.Name == "" {
		return &validation.Error{Field: "name", Message: "the city name is required"}
	}
	if city.CountryCode == "" {
		return &validation.Error{Field: "country_code", Message: "the country is required"}
	}

	city.Active = true
	city.CreatedAt = time.Now()

	if err := s.cityRepo.Create(ctx, city); err != nil {
		s.logger.Errorw("Failed to create city", "error", err, "name", city.Name)
		return err
	}

	s.logger.Infow("City created", "id", city.ID, "name", city.Name, "country", city.CountryCode)
	return nil
}

func (s *catalogServiceImpl) GetCity(ctx context.Context, id int64) (*entity.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrNotFound
	}
	return city, nil
}

func (s *catalogServiceImpl) ListCities(ctx context.Context, limit, offset int) ([]*entity.City, error) {
	return s.cityRepo.List(ctx, limit, offset)
}

func (s *catalogServiceImpl) DeactivateCity(ctx context.Context, actor entity.ActorContext, id int64) error {
	if !actor.Elevated() {
		return fmt.Errorf("%w: managing cities requires the manager role", ErrUnauthorized)
	}
	if err := s.cityRepo.Deactivate(ctx, id); err != nil {
		s.logger.Errorw("Failed to deactivate city", "error", err, "id", id)
		return err
	}
	s.logger.Infow("City deactivated", "id", id)
	return nil
}

func (s *catalogServiceImpl) CreateVehicle(ctx context.Context, actor entity.ActorContext, vehicle *entity.PoolVehicle) error {
	if !actor.Elevated() {
		return fmt.Errorf("%w: managing vehicles requires the manager role", ErrUnauthorized)
	}
	if vehicle.Name == "" {
		return &validation.Error{Field: "name", Message: "the vehicle name is required"}
	}

	vehicle.Active = true
	vehicle.CreatedAt = time.Now()

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Errorw("Failed to create vehicle", "error", err, "name", vehicle.Name)
		return err
	}

	s.logger.Infow("Vehicle created", "id", vehicle.ID, "name", vehicle.Name)
	return nil
}

func (s *catalogServiceImpl) GetVehicle(ctx context.Context, id int64) (*entity.PoolVehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *catalogServiceImpl) ListVehicles(ctx context.Context, limit, offset int) ([]*entity.PoolVehicle, error) {
	return s.vehicleRepo.List(ctx, limit, offset)
}

func (s *catalogServiceImpl) DeactivateVehicle(ctx context.Context, actor entity.ActorContext, id int64) error {
	if !actor.Elevated() {
		return fmt.Errorf("%w: managing vehicles requires the manager role", ErrUnauthorized)
	}
	if err := s.vehicleRepo.Deactivate(ctx, id); err != nil {
		s.logger.Errorw("Failed to deactivate vehicle", "error", err, "id", id)
		return err
	}
	s.logger.Infow("Vehicle deactivated", "id", id)
	return nil
}
