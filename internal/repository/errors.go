// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrDateConflict signals that a booking
// cannot be confirmed because part of its range is already blocked.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDateConflict is returned when confirming a booking whose date range
// overlaps days already blocked on the space. Handlers should translate
// this into an HTTP 409 response.
var ErrDateConflict = errors.New("dates already blocked")

// ErrInvalidStatus is returned when a booking status transition is not
// allowed from the booking's current state (e.g. confirming a rejected
// booking). Handlers should translate this into an HTTP 409 response.
var ErrInvalidStatus = errors.New("invalid status transition")
