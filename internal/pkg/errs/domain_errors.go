package errs

import "fmt"

// ForbiddenError is returned when the caller's role does not allow an action.
type ForbiddenError struct {
	Action string
	Role   string
}

func NewForbiddenError(action, role string) *ForbiddenError {
	return &ForbiddenError{Action: action, Role: role}
}

func (e *ForbiddenError) Error() string {
	role := e.Role
	if role == "" {
		role = "anonymous"
	}
	return fmt.Sprintf("%s: role %s cannot %s", ErrForbidden, sanitize(role), e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// IllegalTransitionError is returned when a status change is rejected by the
// lifecycle table and force mode was not requested.
type IllegalTransitionError struct {
	From string
	To   string
}

func NewIllegalTransitionError(from, to fmt.Stringer) *IllegalTransitionError {
	return &IllegalTransitionError{From: from.String(), To: to.String()}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// IneligibleDriverError is returned when a driver fails the assignment predicate.
type IneligibleDriverError struct {
	DriverID string
	Reason   string
}

func NewIneligibleDriverError(driverID, reason string) *IneligibleDriverError {
	return &IneligibleDriverError{DriverID: driverID, Reason: reason}
}

func (e *IneligibleDriverError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrIneligibleDriver, e.DriverID, e.Reason)
}

func (e *IneligibleDriverError) Unwrap() error {
	return ErrIneligibleDriver
}

// ConflictError is returned when an optimistic write lost a race. Callers are
// expected to reload and reapply.
type ConflictError struct {
	Entity string
	ID     string
	Cause  error
}

func NewConflictError(entity, id string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id}
}

func NewConflictErrorWithCause(entity, id string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.Entity, e.ID)
	return withCause(msg, e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AlreadyExistsError is returned when creating something that must be unique.
// It is classified as a conflict.
type AlreadyExistsError struct {
	Entity string
	Key    string
}

func NewAlreadyExistsError(entity, key string) *AlreadyExistsError {
	return &AlreadyExistsError{Entity: entity, Key: key}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %s already exists", ErrConflict, e.Entity, sanitize(e.Key))
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrConflict
}
