package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/convoybot/convoy/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix      = "move_session:data:"
	stateKeyPrefix        = "move_session:state:"
	participantsKeyPrefix = "move_session:participants:"
	confirmedSetKeyPrefix = "move_session:confirmed:"
	sessionsIndexKey      = "move_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrTransitionLost is returned when a compare-and-transition finds the
// session no longer in the expected state. It identifies the losing side of
// a transition race and is meant to be swallowed by the caller.
var ErrTransitionLost = errors.New("session state transition lost")

// transitionScript commits a state change only if the session is still in
// the expected state. The store's single point of linearization: the timeout
// and the initiator's reaction both funnel through it, and exactly one wins.
//
// Returns 1 on commit, 0 when the state did not match, -1 when the session
// is gone.
var transitionScript = redis.NewScript(`
local state = redis.call("GET", KEYS[1])
if not state then
	return -1
end
if state ~= ARGV[1] then
	return 0
end
local ttl = redis.call("TTL", KEYS[1])
redis.call("SET", KEYS[1], ARGV[2])
if ttl > 0 then
	redis.call("EXPIRE", KEYS[1], ttl)
end
return 1
`)

// addParticipantScript appends a confirmation while the session is still in
// the expected (pending) state, deduplicating through a companion set. Runs
// atomically with respect to transitionScript, so a participant can never be
// appended after the trigger or the expiry committed.
//
// Returns 1 on append, 0 for a duplicate, -1 when the state did not match,
// -2 when the session is gone.
var addParticipantScript = redis.NewScript(`
local state = redis.call("GET", KEYS[1])
if not state then
	return -2
end
if state ~= ARGV[1] then
	return -1
end
if redis.call("SADD", KEYS[2], ARGV[2]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[3], ARGV[2])
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("EXPIRE", KEYS[2], ttl)
	redis.call("EXPIRE", KEYS[3], ttl)
end
return 1
`)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    cfg.SessionTTL,
	}, nil
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.MessageID == "" {
		return errors.New("session message ID cannot be empty")
	}

	// Marshal the session to JSON
	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the session and its state key
	pipe.Set(ctx, sessionKeyPrefix+input.Session.MessageID, sessionJSON, r.ttl)
	pipe.Set(ctx, stateKeyPrefix+input.Session.MessageID, string(input.Session.State), r.ttl)

	// Track the session in the index
	pipe.SAdd(ctx, sessionsIndexKey, input.Session.MessageID)

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by tracking message ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.MoveSession, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	return r.getSession(ctx, input.MessageID)
}

func (r *redisRepository) getSession(ctx context.Context, messageID string) (*models.MoveSession, error) {
	// Get the session from Redis
	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+messageID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess models.MoveSession
	if err := json.Unmarshal([]byte(sessionJSON), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// The state key and the participants list are the live parts of the
	// record; overlay them on the JSON snapshot.
	state, err := r.client.Get(ctx, stateKeyPrefix+messageID).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get session state: %w", err)
	}
	if err == nil {
		sess.State = models.MoveState(state)
	}

	participants, err := r.client.LRange(ctx, participantsKeyPrefix+messageID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session participants: %w", err)
	}
	sess.ConfirmedParticipants = participants

	return &sess, nil
}

// DeleteSession removes a session and its keys from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.MessageID == "" {
		return errors.New("input and message ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx,
		sessionKeyPrefix+input.MessageID,
		stateKeyPrefix+input.MessageID,
		participantsKeyPrefix+input.MessageID,
		confirmedSetKeyPrefix+input.MessageID,
	)
	pipe.SRem(ctx, sessionsIndexKey, input.MessageID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// CompareAndTransition atomically commits a state change
func (r *redisRepository) CompareAndTransition(ctx context.Context, input *CompareAndTransitionInput) (*models.MoveSession, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	res, err := transitionScript.Run(ctx, r.client,
		[]string{stateKeyPrefix + input.MessageID},
		string(input.From), string(input.To),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to run transition script: %w", err)
	}

	switch res {
	case 1:
		// Committed. Participants are frozen from here on because appends
		// also check the state key, so this read is a stable snapshot.
		return r.getSession(ctx, input.MessageID)
	case 0:
		return nil, ErrTransitionLost
	default:
		return nil, ErrSessionNotFound
	}
}

// AddParticipant records a confirmation while the session is pending
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil || input.MessageID == "" || input.UserID == "" {
		return nil, errors.New("input, message ID and user ID cannot be empty")
	}

	res, err := addParticipantScript.Run(ctx, r.client,
		[]string{
			stateKeyPrefix + input.MessageID,
			confirmedSetKeyPrefix + input.MessageID,
			participantsKeyPrefix + input.MessageID,
		},
		string(models.MoveStatePending), input.UserID, int(r.ttl.Seconds()),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to run add participant script: %w", err)
	}

	if res == -2 {
		return nil, ErrSessionNotFound
	}

	return &AddParticipantOutput{
		Added: res == 1,
	}, nil
}

// ListSessions returns every tracked session
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) ([]*models.MoveSession, error) {
	messageIDs, err := r.client.SMembers(ctx, sessionsIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*models.MoveSession, 0, len(messageIDs))
	for _, messageID := range messageIDs {
		sess, err := r.getSession(ctx, messageID)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				// Expired keys can outlive their index entry; prune it
				r.client.SRem(ctx, sessionsIndexKey, messageID)
				continue
			}
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}
