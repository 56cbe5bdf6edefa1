package models

import "time"

// ChangeEvent is published to the message broker after a write changed at
// least one row.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	URI        string    `json:"uri"`
	OccurredAt time.Time `json:"occurred_at"`
}
