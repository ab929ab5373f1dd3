package entity

import "time"

// RequestHistory is one entry of a travel request's append-only audit trail.
// Entries are written inside the same transaction as the change they record
// and are never updated or deleted afterwards.
type RequestHistory struct {
	ID            int64     `json:"id"`
	RequestID     int64     `json:"request_id"`
	ActorID       string    `json:"actor_id"`
	PreviousState string    `json:"previous_state"`
	NewState      string    `json:"new_state"`
	Action        string    `json:"action"`
	Note          string    `json:"note,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
