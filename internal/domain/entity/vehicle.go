package entity

import "time"

// PoolVehicle is a company-owned vehicle available for pool-vehicle travel.
// Vehicles live independently of any request and are only referenced by them.
type PoolVehicle struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Registration string    `json:"registration,omitempty"`
	Make         string    `json:"make,omitempty"`
	Model        string    `json:"model,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
