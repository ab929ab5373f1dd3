package derivation

import (
	"testing"
	"time"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same day", date(2024, 1, 10), date(2024, 1, 10), 1},
		{"inclusive span", date(2024, 1, 10), date(2024, 1, 12), 3},
		{"full week", date(2024, 3, 4), date(2024, 3, 10), 7},
		{"end before start defaults to one day", date(2024, 1, 12), date(2024, 1, 10), 1},
		{"missing start", time.Time{}, date(2024, 1, 10), 1},
		{"missing end", date(2024, 1, 10), time.Time{}, 1},
		{"both missing", time.Time{}, time.Time{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationDays(tt.start, tt.end); got != tt.expected {
				t.Errorf("DurationDays() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestIsInternational(t *testing.T) {
	tests := []struct {
		name        string
		destCountry string
		homeCountry string
		expected    bool
	}{
		{"different countries", "FR", "MA", true},
		{"same country", "MA", "MA", false},
		{"unknown destination defaults to domestic", "", "MA", false},
		{"unknown home defaults to domestic", "FR", "", false},
		{"both unknown", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInternational(tt.destCountry, tt.homeCountry); got != tt.expected {
				t.Errorf("IsInternational() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEstimatedCost(t *testing.T) {
	tests := []struct {
		name          string
		days          int
		international bool
		expected      float64
	}{
		{"domestic single day", 1, false, 700},
		{"domestic three days", 3, false, 2100},
		{"international single day", 1, true, 1500},
		{"international three days", 3, true, 4500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatedCost(tt.days, tt.international, DefaultRates); got != tt.expected {
				t.Errorf("EstimatedCost() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTravelClass(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		distanceKm float64
		expected   string
		ok         bool
	}{
		{"air at threshold stays economy", entity.TransportAir, 6000, entity.ClassEconomy, true},
		{"air above threshold is business", entity.TransportAir, 6001, entity.ClassBusiness, true},
		{"air short haul", entity.TransportAir, 800, entity.ClassEconomy, true},
		{"rail has no class", entity.TransportRail, 9000, "", false},
		{"coach has no class", entity.TransportCoach, 7000, "", false},
		{"pool vehicle has no class", entity.TransportPoolVehicle, 6500, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TravelClass(tt.mode, tt.distanceKm)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("TravelClass() = (%q, %v), want (%q, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestApply(t *testing.T) {
	r := &entity.TravelRequest{
		StartDate:     date(2024, 1, 10),
		EndDate:       date(2024, 1, 12),
		TransportMode: entity.TransportAir,
		DistanceKm:    7000,
	}

	Apply(r, "FR", "MA", DefaultRates)

	if r.DurationDays != 3 {
		t.Errorf("DurationDays = %d, want 3", r.DurationDays)
	}
	if !r.International {
		t.Error("International = false, want true")
	}
	if r.EstimatedCost != 4500 {
		t.Errorf("EstimatedCost = %v, want 4500", r.EstimatedCost)
	}
	if r.TravelClass != entity.ClassBusiness {
		t.Errorf("TravelClass = %q, want %q", r.TravelClass, entity.ClassBusiness)
	}
}

func TestApply_ClearsStaleClass(t *testing.T) {
	r := &entity.TravelRequest{
		StartDate:     date(2024, 1, 10),
		EndDate:       date(2024, 1, 10),
		TransportMode: entity.TransportRail,
		DistanceKm:    7000,
		TravelClass:   entity.ClassBusiness,
	}

	Apply(r, "MA", "MA", DefaultRates)

	if r.TravelClass != "" {
		t.Errorf("TravelClass = %q, want empty for non-air mode", r.TravelClass)
	}
	if r.International {
		t.Error("International = true, want false for same country")
	}
	if r.EstimatedCost != 700 {
		t.Errorf("EstimatedCost = %v, want 700", r.EstimatedCost)
	}
}
