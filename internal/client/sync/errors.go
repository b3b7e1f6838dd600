package sync

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indicates that no credential is set; nothing was sent.
	ErrUnauthenticated = errors.New("not authenticated: set a token first")

	// ErrVersionConflict indicates that the remote file kept changing and the
	// retry budget is exhausted.
	ErrVersionConflict = errors.New("version conflict: remote file changed during save")
)

// TransportError reports a failed read or write: network failure, timeout or
// an unexpected response status. It is surfaced without retry.
type TransportError struct {
	Err error
	Op  string
}

// Error implements error
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}
