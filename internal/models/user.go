package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	Username  string    `json:"username" db:"username"`     // Primary key
	PinHash   string    `json:"-" db:"pin_hash"`            // bcrypt hash of the PIN
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`     // Grants access to admin routes
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
