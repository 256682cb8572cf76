package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

// ConversationStore keeps model chat history per thread as JSON.
type ConversationStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewConversationStore(c *redis.Client, ttl time.Duration) *ConversationStore {
	return &ConversationStore{c: c, ttl: ttl}
}

func threadKey(thread string) string { return "hotelbot:thread:" + thread }

func (s *ConversationStore) Load(ctx context.Context, thread string) ([]*genai.Content, error) {
	b, err := s.c.Get(ctx, threadKey(thread)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", thread, err)
	}
	var out []*genai.Content
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode thread %s: %w", thread, err)
	}
	return out, nil
}

func (s *ConversationStore) Save(ctx context.Context, thread string, history []*genai.Content) error {
	b, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode thread %s: %w", thread, err)
	}
	if err := s.c.Set(ctx, threadKey(thread), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save thread %s: %w", thread, err)
	}
	return nil
}

func (s *ConversationStore) Delete(ctx context.Context, thread string) error {
	return s.c.Del(ctx, threadKey(thread)).Err()
}
