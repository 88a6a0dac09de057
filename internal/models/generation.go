package models

import "time"

// GenerationTask is one pending request for the background worker to
// author new items for an underfilled (subject, difficulty) bucket.
type GenerationTask struct {
	ID           int64      `json:"id"`
	Subject      Subject    `json:"subject"`
	Difficulty   Difficulty `json:"difficulty"`
	ItemsNeeded  int        `json:"items_needed"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
