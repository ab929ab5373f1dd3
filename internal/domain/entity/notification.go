package entity

import "time"

// NotificationMessage is a request to notify one recipient about a workflow
// event. Template is a message key resolved by the notifier's locale bundle;
// Data feeds the template.
type NotificationMessage struct {
	RequestID int64             `json:"request_id"`
	Recipient string            `json:"recipient"`
	Kind      string            `json:"kind"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data,omitempty"`
}

// NotificationRecord is the persisted outbox row for a dispatched (or failed)
// notification.
type NotificationRecord struct {
	ID           int64      `json:"id"`
	RequestID    int64      `json:"request_id"`
	Recipient    string     `json:"recipient"`
	Kind         string     `json:"kind"`
	Template     string     `json:"template"`
	Subject      string     `json:"subject"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
