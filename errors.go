package niceAuth

import "errors"

var (
	// ErrValidation is an exported constant or variable used by the authentication engine.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is an exported constant or variable used by the authentication engine.
	ErrConflict = errors.New("conflicting account state")
	// ErrNotFound is an exported constant or variable used by the authentication engine.
	ErrNotFound = errors.New("account not found")
	// ErrAuth is an exported constant or variable used by the authentication engine.
	ErrAuth = errors.New("authentication failed")
	// ErrExpired is an exported constant or variable used by the authentication engine.
	ErrExpired = errors.New("credential expired")
	// ErrIO is an exported constant or variable used by the authentication engine.
	ErrIO = errors.New("backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")

	// ErrAccountNotFound is an exported constant or variable used by the authentication engine.
	// Store implementations return it from lookups that match no account.
	ErrAccountNotFound = errors.New("account not found in store")
	// ErrDuplicateEmail is an exported constant or variable used by the authentication engine.
	// Store implementations return it from Create when the email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)
