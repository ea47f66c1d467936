package move

import "errors"

// Define errors
var (
	// ErrInvalidTarget is returned when the requested destination is the
	// generator channel, an ignored channel, or outside the configured
	// category. Surfaced to the command issuer; no session is created.
	ErrInvalidTarget = errors.New("target channel is not eligible for a group move")

	ErrMissingInitiator  = errors.New("initiator ID cannot be empty")
	ErrMissingTarget     = errors.New("either a target channel or a new channel name is required")
	ErrConflictingTarget = errors.New("target channel and new channel name are mutually exclusive")

	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilSessionRepo   = errors.New("session repository cannot be nil")
	ErrNilRelocator     = errors.New("relocation service cannot be nil")
	ErrNilNotifier      = errors.New("notifier cannot be nil")
	ErrNilChannelInfo   = errors.New("channel info cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)
