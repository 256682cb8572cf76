package memory

import (
	"context"
	"sync"
	"time"

	"google.golang.org/genai"
)

type thread struct {
	history []*genai.Content
	touched time.Time
}

// ConversationStore keeps chat history per thread in process. Threads idle
// for longer than ttl are forgotten on the next Load.
type ConversationStore struct {
	threads sync.Map
	ttl     time.Duration
	now     func() time.Time
}

func NewConversationStore(ttl time.Duration) *ConversationStore {
	return &ConversationStore{ttl: ttl, now: time.Now}
}

func (s *ConversationStore) Load(_ context.Context, id string) ([]*genai.Content, error) {
	v, ok := s.threads.Load(id)
	if !ok {
		return nil, nil
	}
	t := v.(thread)
	if s.ttl > 0 && s.now().Sub(t.touched) > s.ttl {
		s.threads.Delete(id)
		return nil, nil
	}
	out := make([]*genai.Content, len(t.history))
	copy(out, t.history)
	return out, nil
}

func (s *ConversationStore) Save(_ context.Context, id string, history []*genai.Content) error {
	h := make([]*genai.Content, len(history))
	copy(h, history)
	s.threads.Store(id, thread{history: h, touched: s.now()})
	return nil
}

func (s *ConversationStore) Delete(_ context.Context, id string) error {
	s.threads.Delete(id)
	return nil
}
