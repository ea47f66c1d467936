package models

import (
	"time"
)

// MoveState represents the current state of a move session
type MoveState string

const (
	// MoveStatePending indicates a session is waiting for the initiator's reaction
	MoveStatePending MoveState = "pending"

	// MoveStateTriggered indicates the initiator confirmed and the batch move is running
	MoveStateTriggered MoveState = "triggered"

	// MoveStateCompleted indicates the batch move finished and was reported
	MoveStateCompleted MoveState = "completed"

	// MoveStateExpired indicates the session timed out before the initiator confirmed
	MoveStateExpired MoveState = "expired"

	// MoveStateCancelled indicates the session was aborted by a shutdown
	MoveStateCancelled MoveState = "cancelled"
)

// IsTerminal reports whether no further transition can leave this state
func (s MoveState) IsTerminal() bool {
	return s == MoveStateCompleted || s == MoveStateExpired || s == MoveStateCancelled
}

// MoveSession represents one in-flight group move request
type MoveSession struct {
	// ID is the unique identifier for the session
	ID string

	// GuildID is the Discord server the move happens in
	GuildID string

	// ChannelID is the text channel carrying the tracking message
	ChannelID string

	// MessageID is the tracking message whose reactions gate the move.
	// It is the session's key in the store.
	MessageID string

	// InitiatorID is the user who issued the move command. Only their
	// reaction can trigger the move.
	InitiatorID string

	// TargetChannelID is the resolved destination voice channel.
	// Empty when NewChannelName is set.
	TargetChannelID string

	// NewChannelName is the name for a freshly created room. The room is
	// spawned through the generator channel at trigger time.
	NewChannelName string

	// State is the current lifecycle state
	State MoveState

	// ConfirmedParticipants are the users who reacted before the trigger,
	// in reaction-arrival order, deduplicated. Never contains InitiatorID.
	ConfirmedParticipants []string

	// Deadline is when the session expires if the initiator never reacts
	Deadline time.Time

	// CreatedAt is when the session was opened
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}
