package services

import (
	"errors"
	"fmt"

	"freshsales/internal/models"
)

// Sentinel errors for the four business error kinds. Handlers match on these
// with errors.Is; the concrete error values carry ids and stage names so the
// caller can render a precise message. Storage faults are none of these and
// pass through unwrapped.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrConversionFailed  = errors.New("conversion failed")
)

// NotFoundError names the entity and id that failed to resolve.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError is returned when a stage change violates the stage
// graph, in practice always because the opportunity is already closed.
type InvalidTransitionError struct {
	OpportunityID int64
	From          models.Stage
	To            models.Stage
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsClosed() {
		return fmt.Sprintf(
			"opportunity %d is already closed (%s): stage change to %s rejected",
			e.OpportunityID, e.From.DisplayName(), e.To.DisplayName())
	}
	return fmt.Sprintf("invalid stage transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ConversionError wraps any failure inside the atomic won-conversion sequence,
// so callers can tell "stage change succeeded, conversion failed" apart from a
// failed stage change.
type ConversionError struct {
	OpportunityID int64
	Err           error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("won-conversion of opportunity %d failed: %v", e.OpportunityID, e.Err)
}

func (e *ConversionError) Unwrap() error { return ErrConversionFailed }

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
