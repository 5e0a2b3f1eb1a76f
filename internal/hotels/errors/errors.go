package errors

import "errors"

var (
	ErrNotFound = errors.New("hotel not found")

	ErrInvalidID = errors.New("invalid hotel ID format")

	ErrAlreadyRegistered = errors.New("owner already has a registered hotel")
)
