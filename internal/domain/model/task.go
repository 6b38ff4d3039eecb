package model

import (
	"time"
)

const (
	TaskCodeLength    = 6
	TaskNameMaxLength = 50
)

type Task struct {
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (t Task) String() string {
	return t.Name + " (" + t.Code + ")"
}
