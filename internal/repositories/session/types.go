package session

import (
	"time"

	"github.com/convoybot/convoy/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// SessionTTL bounds how long session keys live. Sessions are removed
	// explicitly when they reach a terminal state; the TTL only mops up
	// after a crash or restart, since timers are process-local.
	SessionTTL time.Duration
}

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	// Session is the session to persist
	Session *models.MoveSession
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	// MessageID is the tracking message ID of the session
	MessageID string
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	// MessageID is the tracking message ID of the session
	MessageID string
}

// CompareAndTransitionInput contains parameters for an atomic state transition
type CompareAndTransitionInput struct {
	// MessageID is the tracking message ID of the session
	MessageID string

	// From is the state the session must currently be in
	From models.MoveState

	// To is the state to commit
	To models.MoveState
}

// AddParticipantInput contains parameters for recording a confirmation
type AddParticipantInput struct {
	// MessageID is the tracking message ID of the session
	MessageID string

	// UserID is the user whose reaction confirmed intent to move
	UserID string
}

// AddParticipantOutput contains the result of recording a confirmation
type AddParticipantOutput struct {
	// Added indicates the user was appended to the participant list.
	// False when the user was already confirmed or the session had
	// already left the pending state.
	Added bool
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct{}
