// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

// ErrInvalidArgument is a sentinel error for rejected inputs
type ErrInvalidArgument struct {
    Field  string
    Reason string
}

func (e *ErrInvalidArgument) Error() string {
    return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Helper constructor
func NewInvalidArgument(field, reason string) error {
    return &ErrInvalidArgument{Field: field, Reason: reason}
}

// IsInvalidArgument reports whether err wraps an ErrInvalidArgument
func IsInvalidArgument(err error) bool {
    var e *ErrInvalidArgument
    return errors.As(err, &e)
}

// ErrDataIntegrityViolation is a sentinel error for a donation event that
// references a donor id missing from the donor set
type ErrDataIntegrityViolation struct {
    DonorID int
}

func (e *ErrDataIntegrityViolation) Error() string {
    return fmt.Sprintf("donation references nonexistent donor id %d", e.DonorID)
}

// Helper constructor
func NewDataIntegrityViolation(donorID int) error {
    return &ErrDataIntegrityViolation{DonorID: donorID}
}

// IsDataIntegrityViolation reports whether err wraps an ErrDataIntegrityViolation
func IsDataIntegrityViolation(err error) bool {
    var e *ErrDataIntegrityViolation
    return errors.As(err, &e)
}
