// Package validation enforces travel request invariants before every create
// or update. Rules run in a fixed order and the first violation aborts the
// operation; nothing is persisted on failure.
package validation

import (
	"fmt"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// MinAirDistanceKm is the minimum estimated distance for air travel.
const MinAirDistanceKm = 500

// Error reports a single invariant violation on a travel request field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Rule checks one invariant on a travel request.
type Rule func(r *entity.TravelRequest) error

// Rules is the ordered list applied by Validate.
var Rules = []Rule{
	checkMandatoryFields,
	checkDates,
	checkDistance,
	checkTransportRules,
	checkVehicle,
}

// Validate runs all rules against r and returns the first violation.
func Validate(r *entity.TravelRequest) error {
	for _, rule := range Rules {
		if err := rule(r); err != nil {
			return err
		}
	}
	return nil
}

func checkMandatoryFields(r *entity.TravelRequest) error {
	if r.EmployeeID == "" {
		return &Error{Field: "employee_id", Message: "an employee is required"}
	}
	if r.StartDate.IsZero() {
		return &Error{Field: "start_date", Message: "a start date is required"}
	}
	if r.EndDate.IsZero() {
		return &Error{Field: "end_date", Message: "an end date is required"}
	}
	if r.CityID == 0 {
		return &Error{Field: "city_id", Message: "a destination city is required"}
	}
	if !entity.ValidTransportMode(r.TransportMode) {
		return &Error{Field: "transport_mode", Message: "a valid transport mode is required"}
	}
	if r.MissionPurpose == "" {
		return &Error{Field: "mission_purpose", Message: "the mission purpose is required"}
	}
	return nil
}

func checkDates(r *entity.TravelRequest) error {
	if r.EndDate.Before(r.StartDate) {
		return &Error{Field: "end_date", Message: "the end date must be on or after the start date"}
	}
	return nil
}

func checkDistance(r *entity.TravelRequest) error {
	if r.DistanceKm <= 0 {
		return &Error{Field: "distance_km", Message: "the estimated distance must be greater than 0"}
	}
	return nil
}

func checkTransportRules(r *entity.TravelRequest) error {
	if r.TransportMode == entity.TransportAir && r.DistanceKm < MinAirDistanceKm {
		return &Error{Field: "distance_km", Message: fmt.Sprintf("air travel requires a distance of at least %d km", MinAirDistanceKm)}
	}
	return nil
}

func checkVehicle(r *entity.TravelRequest) error {
	if r.TransportMode == entity.TransportPoolVehicle && r.VehicleID == nil {
		return &Error{Field: "vehicle_id", Message: "a pool vehicle must be selected for pool-vehicle travel"}
	}
	if r.TransportMode != entity.TransportPoolVehicle && r.VehicleID != nil {
		return &Error{Field: "vehicle_id", Message: "a vehicle may only be set when the transport mode is pool-vehicle"}
	}
	return nil
}
