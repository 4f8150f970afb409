package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated maps 401 from the registry core: no live session.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrForbidden maps 403 from the registry core: insufficient privilege.
	ErrForbidden = errors.New("access forbidden")
	// ErrConflict maps 409: a resource with the same name already exists.
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidRequest maps 400: the core rejected the payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTargetNotFound signals that a just-created target could not be
	// recovered by name from the core.
	ErrTargetNotFound = errors.New("target not found")
	// ErrInvalidCredentials signals a failed sign-in attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DirectoryError carries a registry-core failure that is none of the
// recognised sentinel statuses.
type DirectoryError struct {
	StatusCode int
	Message    string
}

func (e *DirectoryError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry core returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("registry core returned status %d: %s", e.StatusCode, e.Message)
}

// OrphanedTargetError reports a partial saga failure: the target was created
// in the registry core but a later step failed, leaving it with no policy
// referencing it. There is no compensation; callers may use this to clean up.
type OrphanedTargetError struct {
	TargetName string
	TargetID   int64
	Err        error
}

func (e *OrphanedTargetError) Error() string {
	return fmt.Sprintf("target %q created but left orphaned: %v", e.TargetName, e.Err)
}

func (e *OrphanedTargetError) Unwrap() error {
	return e.Err
}
