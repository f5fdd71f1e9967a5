package valueobject

import "errors"

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

// Sentinel errors.
var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotFound                = errors.New("not found")
	ErrVersionConflict         = errors.New("optimistic locking conflict")
)

// ValidationError marks a user-fixable input problem (duration over the
// product cap, motif too short, non-contiguous custom periods). Surfaced to
// the caller verbatim, never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PreconditionError marks a state-machine violation (discharge with a nonzero
// balance, close before discharge, contract creation for a non-approved
// demand). The rejected operation performs no partial mutation.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// NewPreconditionError creates a PreconditionError.
func NewPreconditionError(msg string) error { return &PreconditionError{Msg: msg} }

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
