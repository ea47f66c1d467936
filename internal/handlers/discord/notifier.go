package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/convoybot/convoy/internal/services/move"
)

// Notifier posts the session lifecycle messages to Discord. It implements
// move.Notifier.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a new notifier
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// PostTrackingMessage posts the recruit message and seeds it with the
// confirmation reaction so users can one-click it
func (n *Notifier) PostTrackingMessage(ctx context.Context, input *move.PostTrackingMessageInput) (*move.PostTrackingMessageOutput, error) {
	msg, err := n.session.ChannelMessageSend(input.ChannelID, trackingMessage(input), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to post tracking message: %w", err)
	}

	if err := n.session.MessageReactionAdd(input.ChannelID, msg.ID, HandEmoji, discordgo.WithContext(ctx)); err != nil {
		// The message still anchors the session without the seed
		log.Printf("Failed to seed reaction on message %s: %v", msg.ID, err)
	}

	return &move.PostTrackingMessageOutput{MessageID: msg.ID}, nil
}

// PostExpiryNotice tells the channel the session timed out
func (n *Notifier) PostExpiryNotice(ctx context.Context, input *move.PostExpiryNoticeInput) error {
	if _, err := n.session.ChannelMessageSend(input.ChannelID, expiryNotice(input), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post expiry notice: %w", err)
	}
	return nil
}

// PostMoveReport posts the batch outcome summary
func (n *Notifier) PostMoveReport(ctx context.Context, input *move.PostMoveReportInput) error {
	_, err := n.session.ChannelMessageSendComplex(input.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{moveReportEmbed(input.Report)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post move report: %w", err)
	}
	return nil
}

// RemoveTrackingMessage deletes the recruit message once the session is over
func (n *Notifier) RemoveTrackingMessage(ctx context.Context, input *move.RemoveTrackingMessageInput) error {
	if err := n.session.ChannelMessageDelete(input.ChannelID, input.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete tracking message %s: %w", input.MessageID, err)
	}
	return nil
}
