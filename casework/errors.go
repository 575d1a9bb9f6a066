package casework

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine. Callers branch with errors.Is; handlers
// map them to HTTP status codes.
var (
	// ErrNotFound means the referenced case (or record) does not exist.
	ErrNotFound = errors.New("case not found")

	// ErrPermissionDenied means the actor lacks the credential or enrolled
	// role the operation requires.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict means the operation lost to current case state: the role
	// is held by someone else, or the case is in a terminal status.
	ErrConflict = errors.New("conflict with current case state")

	// ErrInvalidInput means the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigurationMissing means a surface or setting the operation
	// depends on is not configured. The case is left untouched.
	ErrConfigurationMissing = errors.New("required configuration missing")

	// ErrAlreadyEnrolled is the no-op signal for an actor re-claiming a
	// role they already hold.
	ErrAlreadyEnrolled = fmt.Errorf("%w: actor already enrolled in this role", ErrConflict)

	// ErrRoleTaken means another actor holds the requested role.
	ErrRoleTaken = fmt.Errorf("%w: role already held by another participant", ErrConflict)

	// ErrTerminalStatus rejects lifecycle operations on archived or judged
	// cases.
	ErrTerminalStatus = fmt.Errorf("%w: case is in a terminal status", ErrConflict)
)
