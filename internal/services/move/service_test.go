package move_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/convoybot/convoy/internal/common/clock/mocks"
	uuidMocks "github.com/convoybot/convoy/internal/common/uuid/mocks"
	"github.com/convoybot/convoy/internal/models"
	sessionRepo "github.com/convoybot/convoy/internal/repositories/session"
	sessionMocks "github.com/convoybot/convoy/internal/repositories/session/mocks"
	. "github.com/convoybot/convoy/internal/services/move"
	"github.com/convoybot/convoy/internal/services/move/mocks"
	"github.com/convoybot/convoy/internal/services/relocation"
	relocationMocks "github.com/convoybot/convoy/internal/services/relocation/mocks"
)

type MoveServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockSessions  *sessionMocks.MockRepository
	mockRelocator *relocationMocks.MockService
	mockNotifier  *mocks.MockNotifier
	mockChannels  *mocks.MockChannelInfo
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	moveService   Service
	ctx           context.Context

	// Test data
	testTime        time.Time
	testGuildID     string
	testChannelID   string
	testMessageID   string
	testInitiatorID string
	testTargetID    string
	testVoiceID     string
	testSessionID   string

	// Reusable test fixtures
	pendingSession *models.MoveSession
}

func (s *MoveServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockRelocator = relocationMocks.NewMockService(s.mockCtrl)
	s.mockNotifier = mocks.NewMockNotifier(s.mockCtrl)
	s.mockChannels = mocks.NewMockChannelInfo(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	// Initialize test data
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testChannelID = "test-channel-id"
	s.testMessageID = "test-message-id"
	s.testInitiatorID = "test-initiator-id"
	s.testTargetID = "test-target-id"
	s.testVoiceID = "test-voice-id"
	s.testSessionID = "test-session-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID).AnyTimes()

	s.pendingSession = &models.MoveSession{
		ID:              s.testSessionID,
		GuildID:         s.testGuildID,
		ChannelID:       s.testChannelID,
		MessageID:       s.testMessageID,
		InitiatorID:     s.testInitiatorID,
		TargetChannelID: s.testTargetID,
		State:           models.MoveStatePending,
		Deadline:        s.testTime.Add(5 * time.Minute),
		CreatedAt:       s.testTime,
		UpdatedAt:       s.testTime,
	}

	svc, err := New(&Config{
		MoveTimeout:     5 * time.Minute,
		VCCreateChannel: "generator-channel-id",
		VCCategory:      "category-id",
		VCIgnoredChannels: map[string]bool{
			"ignored-channel-id": true,
		},
		SessionRepo:   s.mockSessions,
		Relocator:     s.mockRelocator,
		Notifier:      s.mockNotifier,
		Channels:      s.mockChannels,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.moveService = svc
}

func (s *MoveServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMoveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MoveServiceTestSuite))
}

func (s *MoveServiceTestSuite) openInput() *OpenSessionInput {
	return &OpenSessionInput{
		GuildID:         s.testGuildID,
		ChannelID:       s.testChannelID,
		InitiatorID:     s.testInitiatorID,
		VoiceChannelID:  s.testVoiceID,
		VoiceMemberIDs:  []string{s.testInitiatorID, "user-a"},
		TargetChannelID: s.testTargetID,
	}
}

func (s *MoveServiceTestSuite) TestOpenSession() {
	s.mockChannels.EXPECT().
		ChannelCategory(gomock.Any(), s.testTargetID).
		Return("category-id", nil)

	s.mockNotifier.EXPECT().
		PostTrackingMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *PostTrackingMessageInput) (*PostTrackingMessageOutput, error) {
			s.Equal(s.testInitiatorID, input.InitiatorID)
			s.Equal(s.testTargetID, input.TargetChannelID)
			s.Equal(5*time.Minute, input.Timeout)
			return &PostTrackingMessageOutput{MessageID: s.testMessageID}, nil
		})

	s.mockSessions.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			sess := input.Session
			s.Equal(s.testSessionID, sess.ID)
			s.Equal(s.testMessageID, sess.MessageID)
			s.Equal(models.MoveStatePending, sess.State)
			s.True(sess.Deadline.Equal(s.testTime.Add(5 * time.Minute)))
			return nil
		})

	out, err := s.moveService.OpenSession(s.ctx, s.openInput())
	s.Require().NoError(err)
	s.Equal(s.testMessageID, out.MessageID)
	s.Equal(models.MoveStatePending, out.Session.State)
}

func (s *MoveServiceTestSuite) TestOpenSessionRejectsGeneratorChannel() {
	input := s.openInput()
	input.TargetChannelID = "generator-channel-id"

	// No tracking message, no session, no timer
	_, err := s.moveService.OpenSession(s.ctx, input)
	s.Require().ErrorIs(err, ErrInvalidTarget)
}

func (s *MoveServiceTestSuite) TestOpenSessionRejectsIgnoredChannel() {
	input := s.openInput()
	input.TargetChannelID = "ignored-channel-id"

	_, err := s.moveService.OpenSession(s.ctx, input)
	s.Require().ErrorIs(err, ErrInvalidTarget)
}

func (s *MoveServiceTestSuite) TestOpenSessionRejectsWrongCategory() {
	s.mockChannels.EXPECT().
		ChannelCategory(gomock.Any(), s.testTargetID).
		Return("some-other-category", nil)

	_, err := s.moveService.OpenSession(s.ctx, s.openInput())
	s.Require().ErrorIs(err, ErrInvalidTarget)
}

func (s *MoveServiceTestSuite) TestOpenSessionValidation() {
	input := s.openInput()
	input.InitiatorID = ""
	_, err := s.moveService.OpenSession(s.ctx, input)
	s.Require().ErrorIs(err, ErrMissingInitiator)

	input = s.openInput()
	input.TargetChannelID = ""
	_, err = s.moveService.OpenSession(s.ctx, input)
	s.Require().ErrorIs(err, ErrMissingTarget)

	input = s.openInput()
	input.NewChannelName = "game night"
	_, err = s.moveService.OpenSession(s.ctx, input)
	s.Require().ErrorIs(err, ErrConflictingTarget)
}

func (s *MoveServiceTestSuite) TestOpenSessionSpawnSkipsTargetValidation() {
	input := s.openInput()
	input.TargetChannelID = ""
	input.NewChannelName = "game night"

	s.mockNotifier.EXPECT().
		PostTrackingMessage(gomock.Any(), gomock.Any()).
		Return(&PostTrackingMessageOutput{MessageID: s.testMessageID}, nil)
	s.mockSessions.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		Return(nil)

	out, err := s.moveService.OpenSession(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("game night", out.Session.NewChannelName)
	s.Empty(out.Session.TargetChannelID)
}

func (s *MoveServiceTestSuite) TestOpenSessionSaveFailureRemovesTrackingMessage() {
	s.mockChannels.EXPECT().
		ChannelCategory(gomock.Any(), s.testTargetID).
		Return("category-id", nil)
	s.mockNotifier.EXPECT().
		PostTrackingMessage(gomock.Any(), gomock.Any()).
		Return(&PostTrackingMessageOutput{MessageID: s.testMessageID}, nil)
	s.mockSessions.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))
	s.mockNotifier.EXPECT().
		RemoveTrackingMessage(gomock.Any(), &RemoveTrackingMessageInput{
			ChannelID: s.testChannelID,
			MessageID: s.testMessageID,
		}).
		Return(nil)

	_, err := s.moveService.OpenSession(s.ctx, s.openInput())
	s.Require().Error(err)
}

func (s *MoveServiceTestSuite) TestReactionOnUntrackedMessageIsDropped() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{MessageID: "unrelated-message-id"}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: "unrelated-message-id",
		UserID:    s.testInitiatorID,
	})
	s.Require().NoError(err)
	s.False(out.Handled)
}

func (s *MoveServiceTestSuite) TestNonInitiatorReactionConfirms() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{MessageID: s.testMessageID}).
		Return(s.pendingSession, nil)
	s.mockSessions.EXPECT().
		AddParticipant(gomock.Any(), &sessionRepo.AddParticipantInput{
			MessageID: s.testMessageID,
			UserID:    "user-a",
		}).
		Return(&sessionRepo.AddParticipantOutput{Added: true}, nil)

	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: s.testMessageID,
		UserID:    "user-a",
	})
	s.Require().NoError(err)
	s.True(out.Handled)
	s.True(out.Confirmed)
	s.False(out.Triggered)
}

func (s *MoveServiceTestSuite) TestDuplicateConfirmationIsIdempotent() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(s.pendingSession, nil)
	s.mockSessions.EXPECT().
		AddParticipant(gomock.Any(), gomock.Any()).
		Return(&sessionRepo.AddParticipantOutput{Added: false}, nil)

	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: s.testMessageID,
		UserID:    "user-a",
	})
	s.Require().NoError(err)
	s.True(out.Handled)
	s.False(out.Confirmed)
}

func (s *MoveServiceTestSuite) TestInitiatorReactionTriggersBatch() {
	triggered := *s.pendingSession
	triggered.State = models.MoveStateTriggered
	triggered.ConfirmedParticipants = []string{"user-a", "user-b", "user-c"}

	report := &models.MoveReport{
		TargetChannelID: s.testTargetID,
		Attempted:       4,
		Succeeded:       4,
	}

	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(s.pendingSession, nil)
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), &sessionRepo.CompareAndTransitionInput{
			MessageID: s.testMessageID,
			From:      models.MoveStatePending,
			To:        models.MoveStateTriggered,
		}).
		Return(&triggered, nil)
	s.mockRelocator.EXPECT().
		Execute(gomock.Any(), &relocation.ExecuteInput{
			GuildID:         s.testGuildID,
			TargetChannelID: s.testTargetID,
			Participants:    []string{s.testInitiatorID, "user-a", "user-b", "user-c"},
		}).
		Return(&relocation.ExecuteOutput{Report: report}, nil)
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), &sessionRepo.CompareAndTransitionInput{
			MessageID: s.testMessageID,
			From:      models.MoveStateTriggered,
			To:        models.MoveStateCompleted,
		}).
		Return(&triggered, nil)
	s.mockSessions.EXPECT().
		DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{MessageID: s.testMessageID}).
		Return(nil)
	s.mockNotifier.EXPECT().
		RemoveTrackingMessage(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockNotifier.EXPECT().
		PostMoveReport(gomock.Any(), &PostMoveReportInput{
			ChannelID:   s.testChannelID,
			InitiatorID: s.testInitiatorID,
			Report:      report,
		}).
		Return(nil)

	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: s.testMessageID,
		UserID:    s.testInitiatorID,
	})
	s.Require().NoError(err)
	s.True(out.Handled)
	s.True(out.Triggered)
	s.Equal(report, out.Report)
}

func (s *MoveServiceTestSuite) TestInitiatorReactionLosesRace() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(s.pendingSession, nil)
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), gomock.Any()).
		Return(nil, sessionRepo.ErrTransitionLost)

	// The losing side is silent: no batch, no notifications
	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: s.testMessageID,
		UserID:    s.testInitiatorID,
	})
	s.Require().NoError(err)
	s.False(out.Handled)
	s.False(out.Triggered)
}

func (s *MoveServiceTestSuite) TestReactionOnNonPendingSessionIsDropped() {
	completed := *s.pendingSession
	completed.State = models.MoveStateCompleted

	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(&completed, nil)

	out, err := s.moveService.HandleReaction(s.ctx, &HandleReactionInput{
		MessageID: s.testMessageID,
		UserID:    s.testInitiatorID,
	})
	s.Require().NoError(err)
	s.False(out.Handled)
}

func (s *MoveServiceTestSuite) TestTimeoutExpiresSession() {
	expired := *s.pendingSession
	expired.State = models.MoveStateExpired

	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), &sessionRepo.CompareAndTransitionInput{
			MessageID: s.testMessageID,
			From:      models.MoveStatePending,
			To:        models.MoveStateExpired,
		}).
		Return(&expired, nil)
	s.mockSessions.EXPECT().
		DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{MessageID: s.testMessageID}).
		Return(nil)
	s.mockNotifier.EXPECT().
		RemoveTrackingMessage(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockNotifier.EXPECT().
		PostExpiryNotice(gomock.Any(), &PostExpiryNoticeInput{
			ChannelID:       s.testChannelID,
			InitiatorID:     s.testInitiatorID,
			TargetChannelID: s.testTargetID,
		}).
		Return(nil)

	out, err := s.moveService.HandleTimeout(s.ctx, &HandleTimeoutInput{
		MessageID: s.testMessageID,
	})
	s.Require().NoError(err)
	s.True(out.Expired)
}

func (s *MoveServiceTestSuite) TestTimeoutLosesRace() {
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), gomock.Any()).
		Return(nil, sessionRepo.ErrTransitionLost)

	out, err := s.moveService.HandleTimeout(s.ctx, &HandleTimeoutInput{
		MessageID: s.testMessageID,
	})
	s.Require().NoError(err)
	s.False(out.Expired)
}

func (s *MoveServiceTestSuite) TestTimeoutOnRemovedSession() {
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)

	out, err := s.moveService.HandleTimeout(s.ctx, &HandleTimeoutInput{
		MessageID: s.testMessageID,
	})
	s.Require().NoError(err)
	s.False(out.Expired)
}

func (s *MoveServiceTestSuite) TestShutdownCancelsPendingSessions() {
	other := *s.pendingSession
	other.MessageID = "other-message-id"
	other.State = models.MoveStateTriggered

	s.mockSessions.EXPECT().
		ListSessions(gomock.Any(), gomock.Any()).
		Return([]*models.MoveSession{s.pendingSession, &other}, nil)
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), &sessionRepo.CompareAndTransitionInput{
			MessageID: s.testMessageID,
			From:      models.MoveStatePending,
			To:        models.MoveStateCancelled,
		}).
		Return(s.pendingSession, nil)
	s.mockSessions.EXPECT().
		DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{MessageID: s.testMessageID}).
		Return(nil)
	s.mockNotifier.EXPECT().
		RemoveTrackingMessage(gomock.Any(), gomock.Any()).
		Return(nil)

	err := s.moveService.Shutdown(s.ctx)
	s.Require().NoError(err)
}

// TestTimerFiresExpiry exercises the armed timer end to end with a short
// timeout instead of calling HandleTimeout directly.
func (s *MoveServiceTestSuite) TestTimerFiresExpiry() {
	svc, err := New(&Config{
		MoveTimeout:     20 * time.Millisecond,
		VCCreateChannel: "generator-channel-id",
		VCCategory:      "category-id",
		SessionRepo:     s.mockSessions,
		Relocator:       s.mockRelocator,
		Notifier:        s.mockNotifier,
		Channels:        s.mockChannels,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
	})
	s.Require().NoError(err)

	expired := *s.pendingSession
	expired.State = models.MoveStateExpired
	expiredCh := make(chan struct{})

	s.mockChannels.EXPECT().
		ChannelCategory(gomock.Any(), s.testTargetID).
		Return("category-id", nil)
	s.mockNotifier.EXPECT().
		PostTrackingMessage(gomock.Any(), gomock.Any()).
		Return(&PostTrackingMessageOutput{MessageID: s.testMessageID}, nil)
	s.mockSessions.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockSessions.EXPECT().
		CompareAndTransition(gomock.Any(), &sessionRepo.CompareAndTransitionInput{
			MessageID: s.testMessageID,
			From:      models.MoveStatePending,
			To:        models.MoveStateExpired,
		}).
		Return(&expired, nil)
	s.mockSessions.EXPECT().
		DeleteSession(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockNotifier.EXPECT().
		RemoveTrackingMessage(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockNotifier.EXPECT().
		PostExpiryNotice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *PostExpiryNoticeInput) error {
			close(expiredCh)
			return nil
		})

	_, err = svc.OpenSession(s.ctx, s.openInput())
	s.Require().NoError(err)

	select {
	case <-expiredCh:
	case <-time.After(time.Second):
		s.Fail("expiry timer never fired")
	}
}
