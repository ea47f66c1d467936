package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/convoybot/convoy/internal/models"
	"github.com/convoybot/convoy/internal/services/move"
)

func userMention(id string) string {
	return "<@" + id + ">"
}

func channelMention(id string) string {
	return "<#" + id + ">"
}

// describeDestination names the move destination for message text
func describeDestination(targetChannelID, newChannelName string) string {
	if newChannelName != "" {
		return fmt.Sprintf("a new channel called **%s**", newChannelName)
	}
	return channelMention(targetChannelID)
}

// trackingMessage builds the recruit message. It mentions everyone in the
// initiator's voice channel so they get pinged, and names the reaction and
// the deadline.
func trackingMessage(input *move.PostTrackingMessageInput) string {
	mentions := make([]string, 0, len(input.VoiceMemberIDs))
	for _, id := range input.VoiceMemberIDs {
		mentions = append(mentions, userMention(id))
	}

	minutes := int(input.Timeout.Minutes())
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}

	return fmt.Sprintf(
		"%s\n%s wants to move everyone in %s to %s.\nReact with %s if you're in! The move happens when %s reacts, or the session expires in %d %s.",
		strings.Join(mentions, " "),
		userMention(input.InitiatorID),
		channelMention(input.VoiceChannelID),
		describeDestination(input.TargetChannelID, input.NewChannelName),
		HandEmoji,
		userMention(input.InitiatorID),
		minutes, unit,
	)
}

// expiryNotice builds the message posted when a session times out
func expiryNotice(input *move.PostExpiryNoticeInput) string {
	return fmt.Sprintf(
		"The move to %s timed out before %s triggered it. Run the command again to retry.",
		describeDestination(input.TargetChannelID, input.NewChannelName),
		userMention(input.InitiatorID),
	)
}

// failureReason translates a failure kind for the outcome embed
func failureReason(kind models.FailureKind) string {
	switch kind {
	case models.FailureNotInVoice:
		return "already left voice"
	case models.FailureForbidden:
		return "missing permission"
	case models.FailureRateLimited:
		return "rate limited"
	case models.FailureTargetGone:
		return "destination disappeared"
	case models.FailureBatchAborted:
		return "skipped after abort"
	default:
		return "unexpected error"
	}
}

// moveReportEmbed renders the batch outcome
func moveReportEmbed(report *models.MoveReport) *discordgo.MessageEmbed {
	color := 0x00ff00 // Green color
	if report.Aborted || report.Succeeded == 0 {
		color = 0xff0000 // Red color
	} else if report.Failed > 0 {
		color = 0xffcc00 // Yellow color
	}

	embed := &discordgo.MessageEmbed{
		Title: "Move complete",
		Color: color,
	}

	if report.TargetChannelID != "" {
		embed.Description = fmt.Sprintf("Moved %d of %d to %s.",
			report.Succeeded, report.Succeeded+report.Failed, channelMention(report.TargetChannelID))
	} else {
		embed.Description = fmt.Sprintf("Moved %d of %d.", report.Succeeded, report.Succeeded+report.Failed)
	}

	if len(report.MovedUserIDs) > 0 {
		moved := make([]string, 0, len(report.MovedUserIDs))
		for _, id := range report.MovedUserIDs {
			moved = append(moved, userMention(id))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Moved",
			Value: strings.Join(moved, " "),
		})
	}

	if len(report.Failures) > 0 {
		lines := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			lines = append(lines, fmt.Sprintf("%s: %s", userMention(f.UserID), failureReason(f.Kind)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Not moved",
			Value: strings.Join(lines, "\n"),
		})
	}

	if report.Aborted {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Aborted",
			Value: report.AbortReason,
		})
	}

	return embed
}
