package authclient

import "errors"

var (
	// ErrNoEndpoint is returned when a client is built without an
	// authentication service URL.
	ErrNoEndpoint = errors.New("authentication endpoint is required")

	// ErrRefreshRejected reports that the auth service explicitly refused
	// the refresh token as invalid or expired. It is the one refresh
	// failure that is not worth retrying: the session is over.
	ErrRefreshRejected = errors.New("refresh token rejected")
)
