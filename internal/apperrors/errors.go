package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates an optimistic concurrency failure: the resource changed
// between the caller's read and its write.
var ErrConflict = errors.New("stale state conflict")

// ErrTransitionNotPermitted indicates a claim status change that the state machine rejects.
var ErrTransitionNotPermitted = errors.New("transition not permitted")

// ErrImmutableRecord indicates an attempt to mutate a record that is append-only
// by contract (audit log entries, resolved comments, stage reviews).
var ErrImmutableRecord = errors.New("record is immutable")

// ErrUnsupported indicates the active persistence provider lacks the requested capability.
var ErrUnsupported = errors.New("operation not supported by this provider")

// ErrNotConnected indicates the persistence gateway was invoked outside its
// connect/disconnect lifecycle.
var ErrNotConnected = errors.New("persistence provider not connected")

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")
