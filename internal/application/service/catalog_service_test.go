package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"github.com/tripdesk/tripdesk/internal/domain/validation"
)

func TestCreateCityRequiresElevation(t *testing.T) {
	svc := NewCatalogService(&mockCityRepo{}, &mockVehicleRepo{}, &mockLogger{})

	err := svc.CreateCity(context.Background(), employeeActor("emp-001"), &entity.City{Name: "Lyon", CountryCode: "FR"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}

	if err := svc.CreateCity(context.Background(), managerActor(), &entity.City{Name: "Lyon", CountryCode: "FR"}); err != nil {
		t.Errorf("CreateCity failed for a manager: %v", err)
	}
}

func TestCreateCityValidation(t *testing.T) {
	svc := NewCatalogService(&mockCityRepo{}, &mockVehicleRepo{}, &mockLogger{})

	var verr *validation.Error
	err := svc.CreateCity(context.Background(), managerActor(), &entity.City{CountryCode: "FR"})
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("Expected a name validation error, got %v", err)
	}

	err = svc.CreateCity(context.Background(), managerActor(), &entity.City{Name: "Lyon"})
	if !errors.As(err, &verr) || verr.Field != "country_code" {
		t.Errorf("Expected a country_code validation error, got %v", err)
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	svc := NewCatalogService(&mockCityRepo{}, &mockVehicleRepo{}, &mockLogger{})

	var verr *validation.Error
	err := svc.CreateVehicle(context.Background(), managerActor(), &entity.PoolVehicle{})
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("Expected a name validation error, got %v", err)
	}
}

func TestGetCityNotFound(t *testing.T) {
	cityRepo := &mockCityRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.City, error) {
			return nil, nil
		},
	}
	svc := NewCatalogService(cityRepo, &mockVehicleRepo{}, &mockLogger{})

	_, err := svc.GetCity(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
