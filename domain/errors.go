package domain

import "errors"

var (
	// ErrContentFiltered means generation succeeded but returned no usable
	// text.
	ErrContentFiltered = errors.New("generation returned no usable content")

	// ErrSessionNotFound means the session id maps to no live interview.
	ErrSessionNotFound = errors.New("invalid or expired session")

	// ErrInvalidInput means the caller sent a request the service rejects
	// before touching any external collaborator.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured means the external service credential is absent.
	ErrNotConfigured = errors.New("service credential not configured")

	// ErrExternalService wraps network, timeout and quota failures from
	// the generation and speech services.
	ErrExternalService = errors.New("external service failure")
)
