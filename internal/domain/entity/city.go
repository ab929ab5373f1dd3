package entity

import "time"

// City is a destination catalog entry. (Name, CountryCode) is unique.
type City struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName renders the city as "Name, Country" for notifications and exports.
func (c *City) DisplayName() string {
	if c.CountryCode == "" {
		return c.Name
	}
	return c.Name + ", " + c.CountryCode
}
