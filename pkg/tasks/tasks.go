// Package tasks defines the messages exchanged over Kafka.
package tasks

import "time"

// ScreeningEvent announces that a screening ran. It carries no patient data.
type ScreeningEvent struct {
	EventID      string    `json:"event_id"`
	Username     string    `json:"username"`
	PrimaryClass string    `json:"primary_class"`
	Confidence   float64   `json:"confidence"`
	Resolved     bool      `json:"resolved"`
	Language     string    `json:"language"`
	OccurredAt   time.Time `json:"occurred_at"`
}
