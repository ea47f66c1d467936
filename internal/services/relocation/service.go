package relocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/convoybot/convoy/internal/models"
)

// service implements the Service interface
type service struct {
	config *Config
	mover  Mover
}

// New creates a new relocation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Mover == nil {
		return nil, ErrNilMover
	}

	return &service{
		config: cfg,
		mover:  cfg.Mover,
	}, nil
}

// Execute relocates an ordered batch of participants, initiator first
func (s *service) Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error) {
	if input == nil || len(input.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	if input.TargetChannelID == "" && input.NewChannelName == "" {
		return nil, ErrNoTarget
	}

	report := &models.MoveReport{}
	initiator := input.Participants[0]
	remainder := input.Participants[1:]

	var targetID string
	if input.NewChannelName != "" {
		// Spawn flow: the initiator rides the generator channel, the
		// third-party integration creates a room for them, and that room
		// becomes the batch target.
		report.Attempted++
		if err := s.mover.MoveUser(ctx, input.GuildID, initiator, s.config.VCCreateChannel); err != nil {
			recordFailure(report, initiator, classify(err))
			skipRemainder(report, remainder, "initiator could not enter the generator channel")
			return &ExecuteOutput{Report: report}, nil
		}
		report.Succeeded++
		report.MovedUserIDs = append(report.MovedUserIDs, initiator)

		if err := s.stagger(ctx); err != nil {
			skipRemainder(report, remainder, "cancelled during the stagger wait")
			return &ExecuteOutput{Report: report}, nil
		}

		roomID, err := s.resolveSpawnedRoom(ctx, input.GuildID, initiator, input.NewChannelName)
		if err != nil {
			skipRemainder(report, remainder, err.Error())
			return &ExecuteOutput{Report: report}, nil
		}
		targetID = roomID
	} else {
		targetID = input.TargetChannelID
		report.TargetChannelID = targetID

		report.Attempted++
		if err := s.mover.MoveUser(ctx, input.GuildID, initiator, targetID); err != nil {
			kind := classify(err)
			recordFailure(report, initiator, kind)
			if kind == models.FailureTargetGone {
				skipRemainder(report, remainder, "target channel no longer exists")
				return &ExecuteOutput{Report: report}, nil
			}
		} else {
			report.Succeeded++
			report.MovedUserIDs = append(report.MovedUserIDs, initiator)
		}

		// The stagger happens whether or not the initiator's own move
		// landed, so the remainder never bursts right behind it.
		if err := s.stagger(ctx); err != nil {
			skipRemainder(report, remainder, "cancelled during the stagger wait")
			return &ExecuteOutput{Report: report}, nil
		}
	}
	report.TargetChannelID = targetID

	for i, userID := range remainder {
		report.Attempted++
		if err := s.mover.MoveUser(ctx, input.GuildID, userID, targetID); err != nil {
			kind := classify(err)
			recordFailure(report, userID, kind)
			if kind == models.FailureTargetGone {
				skipRemainder(report, remainder[i+1:], "target channel no longer exists")
				break
			}
			continue
		}
		report.Succeeded++
		report.MovedUserIDs = append(report.MovedUserIDs, userID)
	}

	return &ExecuteOutput{Report: report}, nil
}

// stagger waits out the configured interval. A cooperative suspension
// point: batches for other sessions keep making progress meanwhile.
func (s *service) stagger(ctx context.Context) error {
	timer := time.NewTimer(s.config.MoveWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// resolveSpawnedRoom finds the room the generator channel produced for the
// initiator, validates it as a destination, and renames it
func (s *service) resolveSpawnedRoom(ctx context.Context, guildID, initiatorID, name string) (string, error) {
	roomID, err := s.mover.UserVoiceChannel(ctx, guildID, initiatorID)
	if err != nil {
		return "", fmt.Errorf("could not locate the spawned room: %w", err)
	}

	if roomID == s.config.VCCreateChannel {
		return "", errors.New("the generator channel did not spawn a room")
	}

	if s.config.VCIgnoredChannels[roomID] {
		return "", errors.New("the spawned room is an ignored channel")
	}

	category, err := s.mover.ChannelCategory(ctx, roomID)
	if err != nil {
		return "", fmt.Errorf("could not inspect the spawned room: %w", err)
	}
	if category != s.config.VCCategory {
		return "", errors.New("the spawned room is outside the configured category")
	}

	// The room works under its default name too, so a failed rename does
	// not stop the batch
	_ = s.mover.RenameChannel(ctx, roomID, name)

	return roomID, nil
}

func recordFailure(report *models.MoveReport, userID string, kind models.FailureKind) {
	report.Failed++
	report.Failures = append(report.Failures, models.ParticipantFailure{
		UserID: userID,
		Kind:   kind,
	})
}

func skipRemainder(report *models.MoveReport, skipped []string, reason string) {
	report.Aborted = true
	report.AbortReason = reason
	for _, userID := range skipped {
		report.Failed++
		report.Failures = append(report.Failures, models.ParticipantFailure{
			UserID: userID,
			Kind:   models.FailureBatchAborted,
		})
	}
}
