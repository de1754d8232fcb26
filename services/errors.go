package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the swap engine. Controllers map these to
// HTTP status codes with errors.Is / errors.As.
var (
	// ErrNotFound means a referenced user, item or swap does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized means the acting user has no rights over the target record
	ErrUnauthorized = errors.New("not authorized for this record")
	// ErrInvalidState means the operation is not valid for the record's
	// current lifecycle state, e.g. accepting a non-pending swap
	ErrInvalidState = errors.New("operation not valid in current state")
)

// InsufficientPointsError is returned when a balance check fails. It
// carries the amounts so the boundary can build a user-facing message.
type InsufficientPointsError struct {
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points. Required: %d, Available: %d", e.Required, e.Available)
}

// IsInsufficientPoints reports whether err is an InsufficientPointsError
func IsInsufficientPoints(err error) bool {
	var target *InsufficientPointsError
	return errors.As(err, &target)
}
