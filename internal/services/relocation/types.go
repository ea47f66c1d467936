package relocation

import (
	"time"

	"github.com/convoybot/convoy/internal/models"
)

// Config holds configuration for the relocation service
type Config struct {
	// MoveWait is the stagger between the initiator's move attempt and the
	// first attempt on the remainder
	MoveWait time.Duration

	// VCCreateChannel is the generator channel used to spawn fresh rooms
	VCCreateChannel string

	// VCCategory is the category a spawned room must land in
	VCCategory string

	// VCIgnoredChannels are channels that must never become a destination
	VCIgnoredChannels map[string]bool

	// Mover performs the platform relocation calls
	Mover Mover
}

// ExecuteInput contains parameters for a batch relocation
type ExecuteInput struct {
	// GuildID is the server the batch runs in
	GuildID string

	// TargetChannelID is the destination. Empty when NewChannelName is set.
	TargetChannelID string

	// NewChannelName requests a fresh room spawned through the generator
	// channel and renamed before the batch moves into it
	NewChannelName string

	// Participants is the ordered batch: the initiator first, then the
	// confirmed participants in reaction-arrival order
	Participants []string
}

// ExecuteOutput contains the result of a batch relocation
type ExecuteOutput struct {
	// Report summarizes the batch for the notification layer
	Report *models.MoveReport
}
