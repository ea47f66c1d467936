package move

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/convoybot/convoy/internal/common/clock"
	"github.com/convoybot/convoy/internal/common/uuid"
	"github.com/convoybot/convoy/internal/models"
	sessionRepo "github.com/convoybot/convoy/internal/repositories/session"
	"github.com/convoybot/convoy/internal/services/relocation"
)

// service implements the Service interface
type service struct {
	config    *Config
	sessions  sessionRepo.Repository
	relocator relocation.Service
	notifier  Notifier
	channels  ChannelInfo
	clock     clock.Clock
	uuid      uuid.UUID

	// timers holds the one-shot expiry timer per pending session.
	// Timers are process-local; the store is the source of truth.
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a new move service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Relocator == nil {
		return nil, ErrNilRelocator
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Channels == nil {
		return nil, ErrNilChannelInfo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		config:    cfg,
		sessions:  cfg.SessionRepo,
		relocator: cfg.Relocator,
		notifier:  cfg.Notifier,
		channels:  cfg.Channels,
		clock:     cfg.Clock,
		uuid:      cfg.UUIDGenerator,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// OpenSession validates the target, posts the tracking message, creates a
// pending session and arms its expiry timer
func (s *service) OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.InitiatorID == "" {
		return nil, ErrMissingInitiator
	}

	if input.TargetChannelID == "" && input.NewChannelName == "" {
		return nil, ErrMissingTarget
	}

	if input.TargetChannelID != "" && input.NewChannelName != "" {
		return nil, ErrConflictingTarget
	}

	// A spawned room is validated at trigger time, once it exists. An
	// existing target is validated here, before any session is created.
	if input.TargetChannelID != "" {
		if err := s.validateTarget(ctx, input.TargetChannelID); err != nil {
			return nil, err
		}
	}

	trackOut, err := s.notifier.PostTrackingMessage(ctx, &PostTrackingMessageInput{
		GuildID:         input.GuildID,
		ChannelID:       input.ChannelID,
		InitiatorID:     input.InitiatorID,
		VoiceChannelID:  input.VoiceChannelID,
		VoiceMemberIDs:  input.VoiceMemberIDs,
		TargetChannelID: input.TargetChannelID,
		NewChannelName:  input.NewChannelName,
		Timeout:         s.config.MoveTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post tracking message: %w", err)
	}

	now := s.clock.Now()
	sess := &models.MoveSession{
		ID:              s.uuid.NewUUID(),
		GuildID:         input.GuildID,
		ChannelID:       input.ChannelID,
		MessageID:       trackOut.MessageID,
		InitiatorID:     input.InitiatorID,
		TargetChannelID: input.TargetChannelID,
		NewChannelName:  input.NewChannelName,
		State:           models.MoveStatePending,
		Deadline:        now.Add(s.config.MoveTimeout),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.sessions.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	})
	if err != nil {
		// The tracking message is already up; take it down again
		_ = s.notifier.RemoveTrackingMessage(ctx, &RemoveTrackingMessageInput{
			ChannelID: input.ChannelID,
			MessageID: trackOut.MessageID,
		})
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.armTimer(sess.MessageID)

	return &OpenSessionOutput{
		MessageID: sess.MessageID,
		Session:   sess,
	}, nil
}

// validateTarget rejects the generator channel, ignored channels, and
// channels outside the configured category
func (s *service) validateTarget(ctx context.Context, targetChannelID string) error {
	if targetChannelID == s.config.VCCreateChannel {
		return ErrInvalidTarget
	}

	if s.config.VCIgnoredChannels[targetChannelID] {
		return ErrInvalidTarget
	}

	category, err := s.channels.ChannelCategory(ctx, targetChannelID)
	if err != nil {
		return fmt.Errorf("failed to resolve target channel: %w", err)
	}
	if category != s.config.VCCategory {
		return ErrInvalidTarget
	}

	return nil
}

// HandleReaction processes one reaction-added event addressed to a tracked
// message
func (s *service) HandleReaction(ctx context.Context, input *HandleReactionInput) (*HandleReactionOutput, error) {
	if input == nil || input.MessageID == "" || input.UserID == "" {
		return nil, errors.New("input, message ID and user ID cannot be empty")
	}

	sess, err := s.sessions.GetSession(ctx, &sessionRepo.GetSessionInput{
		MessageID: input.MessageID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			// Untracked message; the router forwards everything it sees
			return &HandleReactionOutput{Handled: false}, nil
		}
		return nil, err
	}

	if sess.State != models.MoveStatePending {
		return &HandleReactionOutput{Handled: false}, nil
	}

	// Anyone but the initiator confirms intent; the append is atomic
	// against the trigger and idempotent on duplicates.
	if input.UserID != sess.InitiatorID {
		out, err := s.sessions.AddParticipant(ctx, &sessionRepo.AddParticipantInput{
			MessageID: input.MessageID,
			UserID:    input.UserID,
		})
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return &HandleReactionOutput{Handled: false}, nil
			}
			return nil, err
		}
		return &HandleReactionOutput{
			Handled:   true,
			Confirmed: out.Added,
		}, nil
	}

	// The initiator's reaction races the expiry timer for the single
	// transition out of pending. Exactly one side commits.
	triggered, err := s.sessions.CompareAndTransition(ctx, &sessionRepo.CompareAndTransitionInput{
		MessageID: input.MessageID,
		From:      models.MoveStatePending,
		To:        models.MoveStateTriggered,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrTransitionLost) || errors.Is(err, sessionRepo.ErrSessionNotFound) {
			// Race loser; the timeout already claimed the session
			return &HandleReactionOutput{Handled: false}, nil
		}
		return nil, err
	}

	s.stopTimer(input.MessageID)

	// Snapshot the batch: initiator first, then confirmations in
	// reaction-arrival order
	participants := make([]string, 0, len(triggered.ConfirmedParticipants)+1)
	participants = append(participants, triggered.InitiatorID)
	for _, userID := range triggered.ConfirmedParticipants {
		if userID != triggered.InitiatorID {
			participants = append(participants, userID)
		}
	}

	execOut, execErr := s.relocator.Execute(ctx, &relocation.ExecuteInput{
		GuildID:         triggered.GuildID,
		TargetChannelID: triggered.TargetChannelID,
		NewChannelName:  triggered.NewChannelName,
		Participants:    participants,
	})

	// Finalize regardless of how the batch went: the session reached
	// triggered, so it ends at completed and leaves the store.
	if _, err := s.sessions.CompareAndTransition(ctx, &sessionRepo.CompareAndTransitionInput{
		MessageID: input.MessageID,
		From:      models.MoveStateTriggered,
		To:        models.MoveStateCompleted,
	}); err != nil {
		log.Printf("Failed to complete session %s: %v", input.MessageID, err)
	}
	s.finalizeSession(ctx, triggered)

	if execErr != nil {
		return nil, fmt.Errorf("failed to execute batch move: %w", execErr)
	}

	if err := s.notifier.PostMoveReport(ctx, &PostMoveReportInput{
		ChannelID:   triggered.ChannelID,
		InitiatorID: triggered.InitiatorID,
		Report:      execOut.Report,
	}); err != nil {
		return nil, fmt.Errorf("failed to post move report: %w", err)
	}

	return &HandleReactionOutput{
		Handled:   true,
		Triggered: true,
		Report:    execOut.Report,
	}, nil
}

// HandleTimeout attempts to expire a session
func (s *service) HandleTimeout(ctx context.Context, input *HandleTimeoutInput) (*HandleTimeoutOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	expired, err := s.sessions.CompareAndTransition(ctx, &sessionRepo.CompareAndTransitionInput{
		MessageID: input.MessageID,
		From:      models.MoveStatePending,
		To:        models.MoveStateExpired,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrTransitionLost) || errors.Is(err, sessionRepo.ErrSessionNotFound) {
			// Race loser; the trigger already claimed the session
			return &HandleTimeoutOutput{Expired: false}, nil
		}
		return nil, err
	}

	s.stopTimer(input.MessageID)
	s.finalizeSession(ctx, expired)

	if err := s.notifier.PostExpiryNotice(ctx, &PostExpiryNoticeInput{
		ChannelID:       expired.ChannelID,
		InitiatorID:     expired.InitiatorID,
		TargetChannelID: expired.TargetChannelID,
		NewChannelName:  expired.NewChannelName,
	}); err != nil {
		return nil, fmt.Errorf("failed to post expiry notice: %w", err)
	}

	return &HandleTimeoutOutput{Expired: true}, nil
}

// Shutdown cancels every pending session
func (s *service) Shutdown(ctx context.Context) error {
	sessions, err := s.sessions.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, sess := range sessions {
		if sess.State != models.MoveStatePending {
			continue
		}

		_, err := s.sessions.CompareAndTransition(ctx, &sessionRepo.CompareAndTransitionInput{
			MessageID: sess.MessageID,
			From:      models.MoveStatePending,
			To:        models.MoveStateCancelled,
		})
		if err != nil {
			// A trigger or expiry got there first
			continue
		}

		s.stopTimer(sess.MessageID)
		s.finalizeSession(ctx, sess)
	}

	// Any timer still standing belongs to a session that won a race above;
	// none of them may fire after shutdown.
	s.mu.Lock()
	for messageID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, messageID)
	}
	s.mu.Unlock()

	return nil
}

// finalizeSession removes a session and its tracking message. Best effort:
// the state transition has already committed.
func (s *service) finalizeSession(ctx context.Context, sess *models.MoveSession) {
	err := s.sessions.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		MessageID: sess.MessageID,
	})
	if err != nil {
		log.Printf("Failed to delete session %s: %v", sess.MessageID, err)
	}

	err = s.notifier.RemoveTrackingMessage(ctx, &RemoveTrackingMessageInput{
		ChannelID: sess.ChannelID,
		MessageID: sess.MessageID,
	})
	if err != nil {
		log.Printf("Failed to remove tracking message %s: %v", sess.MessageID, err)
	}
}

// armTimer starts the one-shot expiry countdown for a session. The timer is
// never reset by later reactions.
func (s *service) armTimer(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[messageID] = time.AfterFunc(s.config.MoveTimeout, func() {
		if _, err := s.HandleTimeout(context.Background(), &HandleTimeoutInput{
			MessageID: messageID,
		}); err != nil {
			log.Printf("Failed to expire session %s: %v", messageID, err)
		}
	})
}

// stopTimer stops and forgets a session's expiry timer, if it is still armed
func (s *service) stopTimer(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[messageID]; ok {
		timer.Stop()
		delete(s.timers, messageID)
	}
}
