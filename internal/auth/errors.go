package auth

import "errors"

var (
	// ErrAuthenticationFailed is returned when the login endpoint rejects
	// the supplied credentials. The server-provided message is attached by
	// wrapping.
	ErrAuthenticationFailed = errors.New("login failed")

	// ErrRegistrationFailed is returned when the registration endpoint
	// rejects the request.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrNoRefreshToken is returned by Refresh when no refresh token is
	// stored. No network call is made in that case.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrRefreshFailed is returned when the refresh endpoint rejects the
	// stored refresh token. The credential bundle has been cleared by the
	// time this is returned; the user must log in again.
	ErrRefreshFailed = errors.New("token refresh failed")
)
