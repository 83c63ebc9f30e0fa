package models

import "time"

// User represents a registered user. Passwords are opaque to the tracker and are not kept.
type User struct {
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}
