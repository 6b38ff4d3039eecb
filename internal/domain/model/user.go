package model

import (
	"time"
)

// User is the record provisioned the first time a configured credential
// authenticates.
type User struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Not exposed
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
