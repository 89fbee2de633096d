package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process IdeaStore. It backs tests and the
// `--store=memory` development mode; nothing survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	ideas map[string]*Idea
	clock func() time.Time
}

var _ IdeaStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(now)
}

// NewMemoryStoreWithClock creates an empty MemoryStore whose creation
// timestamps come from clock.
func NewMemoryStoreWithClock(clock func() time.Time) *MemoryStore {
	return &MemoryStore{ideas: make(map[string]*Idea), clock: clock}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ideas := make([]*Idea, 0, len(s.ideas))
	for _, idea := range s.ideas {
		c := *idea
		ideas = append(ideas, &c)
	}
	sortIdeas(ideas)
	return ideas, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *idea
	return &c, nil
}

func (s *MemoryStore) Insert(ctx context.Context, text string) (*Idea, error) {
	idea := &Idea{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: s.clock(),
	}

	s.mu.Lock()
	s.ideas[idea.ID] = idea
	s.mu.Unlock()

	c := *idea
	return &c, nil
}

func (s *MemoryStore) IncrementUpvotes(ctx context.Context, id string) (*Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, ErrNotFound
	}
	idea.Upvotes++
	c := *idea
	return &c, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
