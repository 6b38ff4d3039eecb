package model

import (
	"time"
)

type TaskEventType string

const (
	TaskCreated TaskEventType = "created"
	TaskUpdated TaskEventType = "updated"
	TaskDeleted TaskEventType = "deleted"
)

// TaskEvent records a committed mutation for the activity queue.
type TaskEvent struct {
	Type       TaskEventType `json:"type"`
	Code       string        `json:"code"`
	Actor      string        `json:"actor"`
	OccurredAt time.Time     `json:"occurred_at"`
}
