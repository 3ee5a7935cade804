// Package common defines shared sentinel errors used across the API layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// Auth errors. ErrInvalidCredentials covers both "no such user" and
	// "wrong password" so responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthorized     = errors.New("unauthorized")

	// Token lifecycle errors (invalid or malformed vs expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Superuser provisioning.
	ErrInvalidSuperuserKey = errors.New("invalid superuser key")

	// Image upload validation.
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image too large")
)
