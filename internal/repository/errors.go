// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios.  ErrConflict signals that an operation cannot proceed
// because of existing dependent records, most importantly deleting a
// staff member who is still referenced by an appointment; the delete
// is never pre-checked in application code, the store enforces it.
package repository

import "errors"

// ErrConflict is returned when a delete cannot be performed because
// of conflicting state, such as removing a staff row that existing
// appointments still reference.  Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")
