package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/convoybot/convoy/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		SessionTTL:  10 * time.Minute,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newTestSession() *models.MoveSession {
	return &models.MoveSession{
		ID:              "test-session-id",
		GuildID:         "test-guild-id",
		ChannelID:       "test-channel-id",
		MessageID:       "test-message-id",
		InitiatorID:     "test-initiator-id",
		TargetChannelID: "test-target-id",
		State:           models.MoveStatePending,
		Deadline:        s.testNow.Add(5 * time.Minute),
		CreatedAt:       s.testNow,
		UpdatedAt:       s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) saveTestSession() *models.MoveSession {
	sess := s.newTestSession()
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: sess,
	})
	s.Require().NoError(err)
	return sess
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	s.saveTestSession()

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		MessageID: "test-message-id",
	})
	s.Require().NoError(err)

	s.Equal("test-session-id", retrieved.ID)
	s.Equal("test-initiator-id", retrieved.InitiatorID)
	s.Equal("test-target-id", retrieved.TargetChannelID)
	s.Equal(models.MoveStatePending, retrieved.State)
	s.Empty(retrieved.ConfirmedParticipants)
	s.True(retrieved.Deadline.Equal(s.testNow.Add(5 * time.Minute)))
}

func (s *RedisRepositoryTestSuite) TestSaveSessionSetsTTL() {
	s.saveTestSession()

	s.Greater(s.mr.TTL(sessionKeyPrefix+"test-message-id"), time.Duration(0))
	s.Greater(s.mr.TTL(stateKeyPrefix+"test-message-id"), time.Duration(0))
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		MessageID: "missing-message-id",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	s.saveTestSession()

	err := s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		MessageID: "test-message-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		MessageID: "test-message-id",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)

	sessions, err := s.repo.ListSessions(context.Background(), &ListSessionsInput{})
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *RedisRepositoryTestSuite) TestCompareAndTransition() {
	s.saveTestSession()

	sess, err := s.repo.CompareAndTransition(context.Background(), &CompareAndTransitionInput{
		MessageID: "test-message-id",
		From:      models.MoveStatePending,
		To:        models.MoveStateTriggered,
	})
	s.Require().NoError(err)
	s.Equal(models.MoveStateTriggered, sess.State)

	// The losing side of the race observes ErrTransitionLost
	_, err = s.repo.CompareAndTransition(context.Background(), &CompareAndTransitionInput{
		MessageID: "test-message-id",
		From:      models.MoveStatePending,
		To:        models.MoveStateExpired,
	})
	s.Require().ErrorIs(err, ErrTransitionLost)
}

func (s *RedisRepositoryTestSuite) TestCompareAndTransitionNotFound() {
	_, err := s.repo.CompareAndTransition(context.Background(), &CompareAndTransitionInput{
		MessageID: "missing-message-id",
		From:      models.MoveStatePending,
		To:        models.MoveStateExpired,
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestConcurrentTransitionsHaveOneWinner() {
	s.saveTestSession()

	var wg sync.WaitGroup
	results := make([]error, 2)
	transitions := []models.MoveState{models.MoveStateTriggered, models.MoveStateExpired}

	for i, to := range transitions {
		wg.Add(1)
		go func(i int, to models.MoveState) {
			defer wg.Done()
			_, err := s.repo.CompareAndTransition(context.Background(), &CompareAndTransitionInput{
				MessageID: "test-message-id",
				From:      models.MoveStatePending,
				To:        to,
			})
			results[i] = err
		}(i, to)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			s.Require().ErrorIs(err, ErrTransitionLost)
		}
	}
	s.Equal(1, winners)
}

func (s *RedisRepositoryTestSuite) TestAddParticipant() {
	s.saveTestSession()

	for _, userID := range []string{"user-a", "user-b", "user-c"} {
		out, err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
			MessageID: "test-message-id",
			UserID:    userID,
		})
		s.Require().NoError(err)
		s.True(out.Added)
	}

	// A duplicate reaction counts once
	out, err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
		MessageID: "test-message-id",
		UserID:    "user-b",
	})
	s.Require().NoError(err)
	s.False(out.Added)

	sess, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		MessageID: "test-message-id",
	})
	s.Require().NoError(err)
	s.Equal([]string{"user-a", "user-b", "user-c"}, sess.ConfirmedParticipants)
}

func (s *RedisRepositoryTestSuite) TestAddParticipantAfterTransition() {
	s.saveTestSession()

	_, err := s.repo.CompareAndTransition(context.Background(), &CompareAndTransitionInput{
		MessageID: "test-message-id",
		From:      models.MoveStatePending,
		To:        models.MoveStateTriggered,
	})
	s.Require().NoError(err)

	// The participant list is frozen once the session leaves pending
	out, err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
		MessageID: "test-message-id",
		UserID:    "late-user",
	})
	s.Require().NoError(err)
	s.False(out.Added)

	sess, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		MessageID: "test-message-id",
	})
	s.Require().NoError(err)
	s.Empty(sess.ConfirmedParticipants)
}

func (s *RedisRepositoryTestSuite) TestAddParticipantNotFound() {
	_, err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{
		MessageID: "missing-message-id",
		UserID:    "user-a",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestListSessions() {
	first := s.saveTestSession()

	second := s.newTestSession()
	second.ID = "other-session-id"
	second.MessageID = "other-message-id"
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: second,
	})
	s.Require().NoError(err)

	sessions, err := s.repo.ListSessions(context.Background(), &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(sessions, 2)

	ids := map[string]bool{}
	for _, sess := range sessions {
		ids[sess.ID] = true
	}
	s.True(ids[first.ID])
	s.True(ids[second.ID])
}
