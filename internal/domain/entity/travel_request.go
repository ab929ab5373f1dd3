package entity

import "time"

// ReferencePlaceholder is the reference value a travel request carries until
// the sequence allocator assigns the definitive one after first persistence.
const ReferencePlaceholder = "NEW"

// TravelRequest represents an employee travel request through its whole
// approval lifecycle.
type TravelRequest struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ManagerID    string `json:"manager_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CityID    int64     `json:"city_id"`

	TransportMode string  `json:"transport_mode"`
	DistanceKm    float64 `json:"distance_km"`
	VehicleID     *int64  `json:"vehicle_id,omitempty"`

	// Derived fields, recomputed before every persist.
	TravelClass   string  `json:"travel_class,omitempty"`
	DurationDays  int     `json:"duration_days"`
	International bool    `json:"is_international"`
	EstimatedCost float64 `json:"estimated_cost"`
	Currency      string  `json:"currency"`

	MissionPurpose       string `json:"mission_purpose"`
	MissionOrderRef      string `json:"mission_order_ref,omitempty"`
	MissionOrderFilename string `json:"mission_order_filename,omitempty"`

	State         string `json:"state"`
	RefusalReason string `json:"refusal_reason,omitempty"`

	OrgUnit   string    `json:"org_unit,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMissionOrder reports whether a mission order document is attached.
func (r *TravelRequest) HasMissionOrder() bool {
	return r.MissionOrderRef != ""
}
