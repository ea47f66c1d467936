package move

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/convoybot/convoy/internal/services/move Service,Notifier,ChannelInfo

// Service defines the interface for move session coordination
type Service interface {
	// OpenSession validates the target, posts the tracking message, creates
	// a pending session and arms its expiry timer
	OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error)

	// HandleReaction processes one reaction-added event addressed to a
	// tracked message. The initiator's reaction attempts the trigger;
	// anyone else's records a confirmation.
	HandleReaction(ctx context.Context, input *HandleReactionInput) (*HandleReactionOutput, error)

	// HandleTimeout attempts to expire a session. The losing side of a
	// race with the trigger is a silent no-op.
	HandleTimeout(ctx context.Context, input *HandleTimeoutInput) (*HandleTimeoutOutput, error)

	// Shutdown cancels every pending session
	Shutdown(ctx context.Context) error
}

// Notifier posts the user-visible session lifecycle messages
type Notifier interface {
	// PostTrackingMessage posts the recruit message whose reactions gate
	// the move, and returns its message ID
	PostTrackingMessage(ctx context.Context, input *PostTrackingMessageInput) (*PostTrackingMessageOutput, error)

	// PostExpiryNotice tells the channel a session timed out
	PostExpiryNotice(ctx context.Context, input *PostExpiryNoticeInput) error

	// PostMoveReport posts the batch outcome summary
	PostMoveReport(ctx context.Context, input *PostMoveReportInput) error

	// RemoveTrackingMessage deletes the recruit message
	RemoveTrackingMessage(ctx context.Context, input *RemoveTrackingMessageInput) error
}

// ChannelInfo resolves channel metadata for target validation
type ChannelInfo interface {
	// ChannelCategory returns the parent category of a channel
	ChannelCategory(ctx context.Context, channelID string) (string, error)
}
