package service

import "errors"

// User-correctable auth and session errors. Controllers map these onto HTTP
// codes; everything else surfaces as a storage or service failure.
var (
	ErrUserExists      = errors.New("username already registered")
	ErrUnknownUser     = errors.New("unknown user")
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session not found")
)
