package checkin

import "errors"

var (
	// ErrInvalidCredentials covers both a bad wedding code and a bad PIN.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid wedding code or PIN")

	// ErrInvalidSession means the staff token is unknown, expired, or its
	// wedding no longer exists.
	ErrInvalidSession = errors.New("invalid or expired staff session")

	// ErrGuestNotFound means the token or guest ID did not resolve within
	// the session's wedding. A valid token for another wedding gets the
	// same answer.
	ErrGuestNotFound = errors.New("guest not found")
)
