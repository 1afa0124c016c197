// Package models holds the server-side records persisted in PostgreSQL.
package models

import "time"

// Account types.
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Type         string
	CreatedAt    time.Time
}
