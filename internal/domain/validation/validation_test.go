package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

func validRequest() *entity.TravelRequest {
	return &entity.TravelRequest{
		EmployeeID:     "emp-001",
		StartDate:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		CityID:         1,
		TransportMode:  entity.TransportRail,
		DistanceKm:     300,
		MissionPurpose: "client workshop",
	}
}

func TestValidate_ValidRequest(t *testing.T) {
	if err := Validate(validRequest()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	vehicleID := int64(4)

	tests := []struct {
		name      string
		mutate    func(r *entity.TravelRequest)
		wantField string
	}{
		{"missing employee", func(r *entity.TravelRequest) { r.EmployeeID = "" }, "employee_id"},
		{"missing start date", func(r *entity.TravelRequest) { r.StartDate = time.Time{} }, "start_date"},
		{"missing end date", func(r *entity.TravelRequest) { r.EndDate = time.Time{} }, "end_date"},
		{"missing destination", func(r *entity.TravelRequest) { r.CityID = 0 }, "city_id"},
		{"unknown transport mode", func(r *entity.TravelRequest) { r.TransportMode = "TELEPORT" }, "transport_mode"},
		{"missing mission purpose", func(r *entity.TravelRequest) { r.MissionPurpose = "" }, "mission_purpose"},
		{"end before start", func(r *entity.TravelRequest) {
			r.StartDate = time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
			r.EndDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		}, "end_date"},
		{"zero distance", func(r *entity.TravelRequest) { r.DistanceKm = 0 }, "distance_km"},
		{"negative distance", func(r *entity.TravelRequest) { r.DistanceKm = -12 }, "distance_km"},
		{"air under minimum distance", func(r *entity.TravelRequest) {
			r.TransportMode = entity.TransportAir
			r.DistanceKm = 499
		}, "distance_km"},
		{"vehicle without pool mode", func(r *entity.TravelRequest) { r.VehicleID = &vehicleID }, "vehicle_id"},
		{"pool mode without vehicle", func(r *entity.TravelRequest) { r.TransportMode = entity.TransportPoolVehicle }, "vehicle_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)

			err := Validate(r)
			if err == nil {
				t.Fatal("Validate() = nil, want violation")
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error type = %T, want *validation.Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("violation field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_AirBoundaries(t *testing.T) {
	r := validRequest()
	r.TransportMode = entity.TransportAir
	r.DistanceKm = 500

	if err := Validate(r); err != nil {
		t.Errorf("Validate() at exactly %d km = %v, want nil", MinAirDistanceKm, err)
	}
}

func TestValidate_PoolVehicleWithVehicle(t *testing.T) {
	vehicleID := int64(7)
	r := validRequest()
	r.TransportMode = entity.TransportPoolVehicle
	r.VehicleID = &vehicleID

	if err := Validate(r); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
