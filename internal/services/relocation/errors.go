package relocation

import (
	"errors"
	"fmt"

	"github.com/convoybot/convoy/internal/models"
)

// Define errors
var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilMover       = errors.New("mover cannot be nil")
	ErrNoParticipants = errors.New("participant batch cannot be empty")
	ErrNoTarget       = errors.New("a target channel or a new channel name is required")
)

// PlatformError wraps a relocation failure with a classification the
// executor can act on
type PlatformError struct {
	// Kind is the failure classification
	Kind models.FailureKind

	// Err is the underlying platform error
	Err error
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform error (%s): %v", e.Kind, e.Err)
}

// Unwrap returns the underlying platform error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// classify extracts the failure kind from a mover error
func classify(err error) models.FailureKind {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Kind
	}
	return models.FailureUnknown
}
