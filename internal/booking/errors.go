// Package booking implements the room availability calculator, the
// reservation transaction manager and the booking lifecycle state
// machine.  It owns the error taxonomy surfaced to the HTTP layer.
package booking

import (
    "errors"
    "fmt"
)

// ErrContention is returned when the occupancy lock for a room type
// could not be acquired within the bounded wait.  No write happened,
// so the caller may safely resubmit the same request.
var ErrContention = errors.New("inventory contention, retry")

// ErrStatusConflict is returned when a lifecycle transition is not
// legal from the booking's current state, including any transition
// out of a terminal state (e.g. cancelling twice).
var ErrStatusConflict = errors.New("illegal booking status transition")

// ErrReferenceExhausted is returned when merchant reference
// generation kept colliding past the retry budget.  Treated as an
// internal failure; the reservation was rolled back.
var ErrReferenceExhausted = errors.New("merchant reference generation exhausted retries")

// ValidationError reports malformed or out-of-range input, detected
// before any lock is taken or row written.  Fields maps an input
// field name to one or more human-readable problems.
type ValidationError struct {
    Fields map[string][]string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func newValidationError() *ValidationError {
    return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, problem string) {
    e.Fields[field] = append(e.Fields[field], problem)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

// RoomTypeDisabledError reports an administratively disabled room
// type in the requested slots.
type RoomTypeDisabledError struct {
    RoomTypeID uint64
}

func (e *RoomTypeDisabledError) Error() string {
    return fmt.Sprintf("room type %d is disabled", e.RoomTypeID)
}

// InsufficientInventoryError reports that the authoritative
// availability re-check found fewer free units than requested.  The
// whole reservation was rolled back.
type InsufficientInventoryError struct {
    RoomTypeID uint64
    Requested  int
    Available  int
}

func (e *InsufficientInventoryError) Error() string {
    return fmt.Sprintf("room type %d: requested %d unit(s), %d available", e.RoomTypeID, e.Requested, e.Available)
}
