package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/convoybot/convoy/internal/models"
	"github.com/convoybot/convoy/internal/services/move"
)

func TestTrackingMessageMentionsEveryone(t *testing.T) {
	msg := trackingMessage(&move.PostTrackingMessageInput{
		ChannelID:       "text-1",
		InitiatorID:     "user-1",
		VoiceChannelID:  "voice-1",
		VoiceMemberIDs:  []string{"user-1", "user-2", "user-3"},
		TargetChannelID: "voice-2",
		Timeout:         5 * time.Minute,
	})

	assert.Contains(t, msg, "<@user-1>")
	assert.Contains(t, msg, "<@user-2>")
	assert.Contains(t, msg, "<@user-3>")
	assert.Contains(t, msg, "<#voice-1>")
	assert.Contains(t, msg, "<#voice-2>")
	assert.Contains(t, msg, HandEmoji)
	assert.Contains(t, msg, "5 minutes")
}

func TestTrackingMessageNamesSpawnedChannel(t *testing.T) {
	msg := trackingMessage(&move.PostTrackingMessageInput{
		InitiatorID:    "user-1",
		VoiceChannelID: "voice-1",
		VoiceMemberIDs: []string{"user-1"},
		NewChannelName: "raid night",
		Timeout:        time.Minute,
	})

	assert.Contains(t, msg, "raid night")
	assert.Contains(t, msg, "1 minute")
	assert.NotContains(t, msg, "<#>")
}

func TestMoveReportEmbedFullSuccess(t *testing.T) {
	embed := moveReportEmbed(&models.MoveReport{
		TargetChannelID: "voice-2",
		Attempted:       2,
		Succeeded:       2,
		MovedUserIDs:    []string{"user-1", "user-2"},
	})

	assert.Equal(t, 0x00ff00, embed.Color)
	assert.Contains(t, embed.Description, "2 of 2")
	assert.Contains(t, embed.Description, "<#voice-2>")
	assert.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "<@user-2>")
}

func TestMoveReportEmbedPartialFailure(t *testing.T) {
	embed := moveReportEmbed(&models.MoveReport{
		TargetChannelID: "voice-2",
		Attempted:       3,
		Succeeded:       2,
		Failed:          1,
		MovedUserIDs:    []string{"user-1", "user-2"},
		Failures: []models.ParticipantFailure{
			{UserID: "user-3", Kind: models.FailureNotInVoice},
		},
	})

	assert.Equal(t, 0xffcc00, embed.Color)
	assert.Len(t, embed.Fields, 2)
	assert.Contains(t, embed.Fields[1].Value, "<@user-3>")
	assert.Contains(t, embed.Fields[1].Value, "already left voice")
}

func TestMoveReportEmbedAborted(t *testing.T) {
	embed := moveReportEmbed(&models.MoveReport{
		Attempted: 1,
		Failed:    2,
		Aborted:   true,
		Failures: []models.ParticipantFailure{
			{UserID: "user-1", Kind: models.FailureTargetGone},
			{UserID: "user-2", Kind: models.FailureBatchAborted},
		},
		AbortReason: "destination disappeared",
	})

	assert.Equal(t, 0xff0000, embed.Color)
	assert.Contains(t, embed.Fields[len(embed.Fields)-1].Value, "destination disappeared")
}

func TestExpiryNoticeNamesDestination(t *testing.T) {
	msg := expiryNotice(&move.PostExpiryNoticeInput{
		InitiatorID:     "user-1",
		TargetChannelID: "voice-2",
	})

	assert.Contains(t, msg, "<@user-1>")
	assert.Contains(t, msg, "<#voice-2>")
	assert.Contains(t, msg, "timed out")
}
