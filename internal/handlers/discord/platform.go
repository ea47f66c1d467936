package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/convoybot/convoy/internal/models"
	"github.com/convoybot/convoy/internal/services/relocation"
)

// PlatformAdapter wraps the discordgo calls the services drive. It
// implements relocation.Mover and move.ChannelInfo.
type PlatformAdapter struct {
	session *discordgo.Session
}

// NewPlatformAdapter creates a new platform adapter
func NewPlatformAdapter(session *discordgo.Session) *PlatformAdapter {
	return &PlatformAdapter{session: session}
}

// MoveUser relocates a user to a voice channel
func (a *PlatformAdapter) MoveUser(ctx context.Context, guildID, userID, channelID string) error {
	if err := a.session.GuildMemberMove(guildID, userID, &channelID, discordgo.WithContext(ctx)); err != nil {
		return classifyPlatformError(err)
	}
	return nil
}

// UserVoiceChannel returns the voice channel a user currently sits in,
// from the gateway's cached guild state
func (a *PlatformAdapter) UserVoiceChannel(ctx context.Context, guildID, userID string) (string, error) {
	guild, err := a.session.State.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to get guild %s from state: %w", guildID, err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, nil
		}
	}

	return "", &relocation.PlatformError{
		Kind: models.FailureNotInVoice,
		Err:  fmt.Errorf("user %s is not in a voice channel", userID),
	}
}

// ChannelCategory returns the parent category of a channel
func (a *PlatformAdapter) ChannelCategory(ctx context.Context, channelID string) (string, error) {
	channel, err := a.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", classifyPlatformError(err)
	}
	return channel.ParentID, nil
}

// RenameChannel renames a voice channel
func (a *PlatformAdapter) RenameChannel(ctx context.Context, channelID, name string) error {
	_, err := a.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return classifyPlatformError(err)
	}
	return nil
}

// classifyPlatformError maps Discord REST failures onto the executor's
// failure kinds
func classifyPlatformError(err error) error {
	var rateLimitErr *discordgo.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &relocation.PlatformError{Kind: models.FailureRateLimited, Err: err}
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeTargetIsNotConnectedToVoice:
			return &relocation.PlatformError{Kind: models.FailureNotInVoice, Err: err}
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return &relocation.PlatformError{Kind: models.FailureForbidden, Err: err}
		case discordgo.ErrCodeUnknownChannel:
			return &relocation.PlatformError{Kind: models.FailureTargetGone, Err: err}
		}
	}

	return &relocation.PlatformError{Kind: models.FailureUnknown, Err: err}
}
