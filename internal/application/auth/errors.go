package auth

import "errors"

var (
	// ErrEmailExists: the (case-folded) email already has an account.
	ErrEmailExists = errors.New("An account with this email already exists.")

	// ErrInvalidCredentials covers both unknown email and wrong password, so the
	// caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("Invalid credentials.")
)
