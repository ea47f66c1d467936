package move

import (
	"time"

	"github.com/convoybot/convoy/internal/common/clock"
	"github.com/convoybot/convoy/internal/common/uuid"
	"github.com/convoybot/convoy/internal/models"
	sessionRepo "github.com/convoybot/convoy/internal/repositories/session"
	"github.com/convoybot/convoy/internal/services/relocation"
)

// Config holds configuration for the move service
type Config struct {
	// MoveTimeout is how long a session waits for the initiator's reaction
	MoveTimeout time.Duration

	// VCCreateChannel is the generator channel; never a valid target
	VCCreateChannel string

	// VCCategory is the category a target channel must belong to
	VCCategory string

	// VCIgnoredChannels are channels excluded as targets
	VCIgnoredChannels map[string]bool

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Relocator relocation.Service
	Notifier  Notifier
	Channels  ChannelInfo

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// OpenSessionInput contains parameters for opening a move session
type OpenSessionInput struct {
	// GuildID is the Discord server the move happens in
	GuildID string

	// ChannelID is the text channel the command came from; the tracking
	// message is posted there
	ChannelID string

	// InitiatorID is the user who issued the command
	InitiatorID string

	// VoiceChannelID is the voice channel the initiator currently sits in
	VoiceChannelID string

	// VoiceMemberIDs are the users sitting in that voice channel, for the
	// recruit message to mention
	VoiceMemberIDs []string

	// TargetChannelID is an existing destination channel. Empty when
	// NewChannelName is set.
	TargetChannelID string

	// NewChannelName requests a fresh room spawned at trigger time
	NewChannelName string
}

// OpenSessionOutput contains the result of opening a session
type OpenSessionOutput struct {
	// MessageID is the tracking message anchoring the session's reactions
	MessageID string

	// Session is the created session
	Session *models.MoveSession
}

// HandleReactionInput contains parameters for one reaction-added event
type HandleReactionInput struct {
	// MessageID is the message the reaction was attached to
	MessageID string

	// UserID is the user who reacted
	UserID string
}

// HandleReactionOutput contains the result of processing a reaction
type HandleReactionOutput struct {
	// Handled indicates the event was addressed to a live session
	Handled bool

	// Confirmed indicates a non-initiator was added to the participant list
	Confirmed bool

	// Triggered indicates the initiator's reaction committed the trigger
	Triggered bool

	// Report is the batch outcome, set when Triggered
	Report *models.MoveReport
}

// HandleTimeoutInput contains parameters for a session expiry attempt
type HandleTimeoutInput struct {
	// MessageID is the tracking message ID of the session
	MessageID string
}

// HandleTimeoutOutput contains the result of a session expiry attempt
type HandleTimeoutOutput struct {
	// Expired indicates the session was expired by this call. False means
	// the session had already left pending or was already gone.
	Expired bool
}

// PostTrackingMessageInput contains parameters for the recruit message
type PostTrackingMessageInput struct {
	GuildID        string
	ChannelID      string
	InitiatorID    string
	VoiceChannelID string
	VoiceMemberIDs []string

	// TargetChannelID or NewChannelName describes the destination
	TargetChannelID string
	NewChannelName  string

	// Timeout is shown to users so they know how long they have to react
	Timeout time.Duration
}

// PostTrackingMessageOutput contains the posted message's ID
type PostTrackingMessageOutput struct {
	MessageID string
}

// PostExpiryNoticeInput contains parameters for the expiry notice
type PostExpiryNoticeInput struct {
	ChannelID       string
	InitiatorID     string
	TargetChannelID string
	NewChannelName  string
}

// PostMoveReportInput contains parameters for the outcome summary
type PostMoveReportInput struct {
	ChannelID   string
	InitiatorID string
	Report      *models.MoveReport
}

// RemoveTrackingMessageInput contains parameters for deleting the recruit message
type RemoveTrackingMessageInput struct {
	ChannelID string
	MessageID string
}
