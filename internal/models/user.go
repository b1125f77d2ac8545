package models

import "time"

// User is an account row. A non-nil DeletedAt marks the row as
// soft-deleted; every lookup except the login credential check
// must skip such rows.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}
