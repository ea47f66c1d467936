package relocation

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/convoybot/convoy/internal/services/relocation Service,Mover

// Service defines the interface for batch relocations
type Service interface {
	// Execute relocates an ordered batch of participants. The first entry
	// is the initiator and is moved before anyone else; the executor then
	// waits the stagger interval before moving the remainder in order.
	Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error)
}

// Mover is the platform primitive the executor drives. Implementations wrap
// per-call failures in a PlatformError so the executor can classify them.
type Mover interface {
	// MoveUser relocates a user to a voice channel
	MoveUser(ctx context.Context, guildID, userID, channelID string) error

	// UserVoiceChannel returns the voice channel a user currently sits in
	UserVoiceChannel(ctx context.Context, guildID, userID string) (string, error)

	// ChannelCategory returns the parent category of a channel
	ChannelCategory(ctx context.Context, channelID string) (string, error)

	// RenameChannel renames a voice channel
	RenameChannel(ctx context.Context, channelID, name string) error
}
