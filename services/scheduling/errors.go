package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError covers bad input caught before any write: missing
// resource/time/services or a violated notice window. Fully recoverable by
// the caller adjusting input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ConflictError means the slot was taken by a concurrent write between the
// availability computation and the commit re-check. The caller should
// re-query availability and retry.
type ConflictError struct {
	ResourceID string
	Start      time.Time
	End        time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s–%s for resource %s is no longer available",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.ResourceID)
}

// ClientAmbiguityError means a client with the same name exists but no phone
// number can disambiguate. Surfaced to the user; never auto-resolved.
type ClientAmbiguityError struct {
	FirstName string
	LastName  string
}

func (e *ClientAmbiguityError) Error() string {
	return fmt.Sprintf("a client named %s %s already exists; a phone number is required to tell them apart",
		e.FirstName, e.LastName)
}

// PartialPersistenceError means some but not all segments of a group were
// written. The stored state is inconsistent and needs manual reconciliation,
// so it must never be folded into validation or conflict failures.
type PartialPersistenceError struct {
	GroupID string
	Written int
	Total   int
	Err     error
}

func (e *PartialPersistenceError) Error() string {
	return fmt.Sprintf("group %s partially persisted (%d of %d segments): %v",
		e.GroupID, e.Written, e.Total, e.Err)
}

func (e *PartialPersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsClientAmbiguity reports whether err is a ClientAmbiguityError.
func IsClientAmbiguity(err error) bool {
	var ae *ClientAmbiguityError
	return errors.As(err, &ae)
}

// IsPartialPersistence reports whether err is a PartialPersistenceError.
func IsPartialPersistence(err error) bool {
	var pe *PartialPersistenceError
	return errors.As(err, &pe)
}
