// Package common defines shared constants and sentinel errors used across
// client and server layers of Billed. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorAlreadyExists = errors.New("already exists")

	// Input rejected locally or by the store (bad attachment, malformed field).
	ErrValidation = errors.New("validation error")

	// Remote store failures.
	ErrTransport    = errors.New("store unreachable")
	ErrServer       = errors.New("store error")
	ErrUnauthorized = errors.New("unauthorized")

	// A fetched record could not be normalized; recovered by degrading to raw data.
	ErrMalformedRecord = errors.New("malformed record")

	// Auth errors (invalid or malformed token, bad credentials).
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email/password")
)
