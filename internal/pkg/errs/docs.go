// Package errs provides the error taxonomy of the fulfillment core.
//
// The package includes:
//   - ObjectNotFoundError: an order or driver id does not resolve to a live record
//   - ForbiddenError: the caller lacks the role required for an operation
//   - IllegalTransitionError: a status change violates the lifecycle table
//   - IneligibleDriverError: a driver fails the assignment predicate
//   - ConflictError: an optimistic write lost a race and must be retried
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input,
//     all of which also match ErrMalformedInput
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
package errs
