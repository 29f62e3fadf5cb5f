package services

import "errors"

var (
	// ErrEmailRequired is returned when an account is created or updated without an email.
	ErrEmailRequired = errors.New("users must have an email address")
	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials covers every authentication failure so callers
	// cannot learn which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
