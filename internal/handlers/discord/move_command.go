package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/convoybot/convoy/internal/services/move"
)

// MoveCommand handles the /move command: spawn a fresh voice channel and
// recruit the issuer's roommates to move there together.
type MoveCommand struct {
	BaseCommand
	moveService move.Service
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(svc move.Service) *MoveCommand {
	return &MoveCommand{
		BaseCommand: BaseCommand{
			Name:        "move",
			Description: "Create a fresh voice channel and recruit everyone here to move to it",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "channel_name",
					Description: "Name for the new voice channel",
					Required:    true,
				},
			},
		},
		moveService: svc,
	}
}

// Handle processes the move command
func (c *MoveCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	name := i.ApplicationCommandData().Options[0].StringValue()
	return openSession(s, i, c.moveService, &move.OpenSessionInput{
		NewChannelName: name,
	})
}

// MoveToCommand handles the /move_to command: recruit the issuer's
// roommates to move to an existing voice channel.
type MoveToCommand struct {
	BaseCommand
	moveService move.Service
}

// NewMoveToCommand creates a new move_to command handler
func NewMoveToCommand(svc move.Service) *MoveToCommand {
	return &MoveToCommand{
		BaseCommand: BaseCommand{
			Name:        "move_to",
			Description: "Recruit everyone in your voice channel to move to another one",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Voice channel to move to",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildVoice,
					},
				},
			},
		},
		moveService: svc,
	}
}

// Handle processes the move_to command
func (c *MoveToCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	target := i.ApplicationCommandData().Options[0].ChannelValue(s)
	if target == nil {
		return RespondWithEphemeralMessage(s, i, "I couldn't resolve that channel.")
	}

	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "This command only works inside a server.")
	}

	// The issuer must be able to join the destination themselves
	perms, err := s.UserChannelPermissions(i.Member.User.ID, target.ID)
	if err != nil || perms&discordgo.PermissionVoiceConnect == 0 {
		return RespondWithEphemeralMessage(s, i, "You don't have permission to join that channel.")
	}

	return openSession(s, i, c.moveService, &move.OpenSessionInput{
		TargetChannelID: target.ID,
	})
}

// openSession resolves the issuer's voice room, opens the session and
// acknowledges the interaction. Replies are ephemeral so the tracking
// message stays the only public artifact.
func openSession(s *discordgo.Session, i *discordgo.InteractionCreate, svc move.Service, input *move.OpenSessionInput) error {
	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "This command only works inside a server.")
	}
	userID := i.Member.User.ID

	voiceChannelID, memberIDs, err := currentVoiceChannel(s, i.GuildID, userID)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "Join a voice channel first, then run the command again.")
	}

	input.GuildID = i.GuildID
	input.ChannelID = i.ChannelID
	input.InitiatorID = userID
	input.VoiceChannelID = voiceChannelID
	input.VoiceMemberIDs = memberIDs

	if _, err := svc.OpenSession(context.Background(), input); err != nil {
		if errors.Is(err, move.ErrInvalidTarget) {
			return RespondWithEphemeralMessage(s, i, "That channel can't be used as a move destination.")
		}

		log.Printf("Error opening move session for %s in guild %s: %v", userID, i.GuildID, err)
		return RespondWithEphemeralMessage(s, i, "Something went wrong starting the move. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Recruiting started. React with %s on the message yourself when you're ready to move everyone.",
		HandEmoji,
	))
}

// currentVoiceChannel returns the voice channel the user sits in and the
// IDs of everyone sharing it, from the gateway's cached guild state
func currentVoiceChannel(s *discordgo.Session, guildID, userID string) (string, []string, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get guild %s from state: %w", guildID, err)
	}

	var channelID string
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			channelID = vs.ChannelID
			break
		}
	}
	if channelID == "" {
		return "", nil, fmt.Errorf("user %s is not in a voice channel", userID)
	}

	var memberIDs []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			memberIDs = append(memberIDs, vs.UserID)
		}
	}

	return channelID, memberIDs, nil
}
