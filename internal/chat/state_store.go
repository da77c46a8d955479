package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// StateStore persists conversation state between turns.
// Get returns (nil, nil) when no state exists for the id.
type StateStore interface {
	Get(ctx context.Context, conversationID string) (*State, error)
	Upsert(ctx context.Context, state *State) error
}

// RedisStateStore keeps conversation state as JSON blobs in Redis.
// A zero TTL keeps conversations indefinitely.
type RedisStateStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStateStore creates a Redis-backed store.
func NewRedisStateStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisStateStore {
	if client == nil {
		panic("chat: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("jobassistant.internal.chat.state")
	}
	return &RedisStateStore{
		redis:  client,
		ttl:    ttl,
		tracer: tracer,
	}
}

func (s *RedisStateStore) Get(ctx context.Context, conversationID string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "chat.load_state")
	defer span.End()

	data, err := s.redis.Get(ctx, stateKey(conversationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("chat: failed to load state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chat: failed to decode state: %w", err)
	}
	return &state, nil
}

func (s *RedisStateStore) Upsert(ctx context.Context, state *State) error {
	ctx, span := s.tracer.Start(ctx, "chat.save_state")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to marshal state: %w", err)
	}
	if err := s.redis.Set(ctx, stateKey(state.ConversationID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to persist state: %w", err)
	}
	return nil
}

func stateKey(conversationID string) string {
	return fmt.Sprintf("jobchat:state:%s", conversationID)
}
