// Package derivation recomputes the dependent fields of a travel request
// (duration, internationality, travel class, estimated cost). All functions
// are total: missing inputs fall back to an explicit default instead of
// failing, and the result must be re-applied before every persist so stored
// values never go stale.
package derivation

import (
	"time"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// Rates holds the flat per-diem rate table in the organization's base
// currency. No currency conversion is performed.
type Rates struct {
	Domestic      float64
	International float64
}

// DefaultRates matches the company expense policy.
var DefaultRates = Rates{Domestic: 700, International: 1500}

// DurationDays returns the inclusive day count between start and end.
// A missing date on either side defaults to a single day.
func DurationDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 1
	}
	delta := int(end.Sub(start).Hours() / 24)
	if delta < 0 {
		return 1
	}
	return delta + 1
}

// IsInternational compares the destination country against the company's home
// country. An unknown country on either side is treated as domestic rather
// than failing on incomplete master data.
func IsInternational(destCountry, homeCountry string) bool {
	if destCountry == "" || homeCountry == "" {
		return false
	}
	return destCountry != homeCountry
}

// EstimatedCost applies the per-diem rate for the trip's duration.
func EstimatedCost(durationDays int, international bool, rates Rates) float64 {
	if international {
		return float64(durationDays) * rates.International
	}
	return float64(durationDays) * rates.Domestic
}

// TravelClass returns the travel class for air trips: business above 6000 km,
// economy otherwise. For any other transport mode ok is false and the class
// is absent.
func TravelClass(mode string, distanceKm float64) (string, bool) {
	if mode != entity.TransportAir {
		return "", false
	}
	if distanceKm > 6000 {
		return entity.ClassBusiness, true
	}
	return entity.ClassEconomy, true
}

// Apply recomputes all derived fields of r in place from its current inputs.
func Apply(r *entity.TravelRequest, destCountry, homeCountry string, rates Rates) {
	r.DurationDays = DurationDays(r.StartDate, r.EndDate)
	r.International = IsInternational(destCountry, homeCountry)
	r.EstimatedCost = EstimatedCost(r.DurationDays, r.International, rates)

	if class, ok := TravelClass(r.TransportMode, r.DistanceKm); ok {
		r.TravelClass = class
	} else {
		r.TravelClass = ""
	}
}
