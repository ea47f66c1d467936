package session

import (
	"context"

	"github.com/convoybot/convoy/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/convoybot/convoy/internal/repositories/session Repository

// Repository defines the storage contract for move sessions
type Repository interface {
	// SaveSession persists a session keyed by its tracking message ID
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by tracking message ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.MoveSession, error)

	// DeleteSession removes a session and all its keys
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// CompareAndTransition atomically moves a session's state from an
	// expected value to a new one. It returns the session as observed after
	// the commit, ErrTransitionLost when the session was no longer in the
	// expected state, or ErrSessionNotFound when the session is gone.
	CompareAndTransition(ctx context.Context, input *CompareAndTransitionInput) (*models.MoveSession, error)

	// AddParticipant appends a user to the confirmed participant list,
	// atomically with respect to state transitions. The append only happens
	// while the session is pending; duplicates are ignored.
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// ListSessions returns every tracked session
	ListSessions(ctx context.Context, input *ListSessionsInput) ([]*models.MoveSession, error)
}
