package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

	ErrLockHeld = errors.New("another booking for this room is in progress")
)
