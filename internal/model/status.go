package model

import "fmt"

// Status is the closed set of appointment states.  Only the three
// constants below are constructible through ParseStatus; the stored
// column carries the literal string value.
type Status string

const (
    StatusBooked    Status = "Booked"
    StatusCancelled Status = "Cancelled"
    StatusCompleted Status = "Completed"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
    switch s {
    case StatusBooked, StatusCancelled, StatusCompleted:
        return true
    }
    return false
}

// String returns the literal stored in the database.
func (s Status) String() string { return string(s) }

// ParseStatus converts a raw string into a Status, rejecting any
// value outside the closed enumeration.
func ParseStatus(raw string) (Status, error) {
    s := Status(raw)
    if !s.Valid() {
        return "", fmt.Errorf("unknown appointment status %q", raw)
    }
    return s, nil
}
