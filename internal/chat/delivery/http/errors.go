package http

import "errors"

var (
	// ErrEmptyMessage rejects requests whose message is missing or blank.
	ErrEmptyMessage = errors.New("message is required")
)
