// Package common defines shared constants and sentinel errors used across
// signalwars components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorStorage       = errors.New("storage error")

	// Authorization errors (insufficient privilege, bad or missing token).
	ErrorNotAllowed = errors.New("not allowed")

	// Validation errors, raised before any storage call is made.
	ErrorInvalidData = errors.New("invalid data")

	// Auth token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
