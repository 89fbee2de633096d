// Package service implements the idea board's query and mutation operations
// on top of a store.IdeaStore.
package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/metrics"
	"github.com/joestump/ideaboard/internal/store"
)

// Service validates input and delegates to the store. It holds no state of
// its own; every call maps to exactly one store call.
type Service struct {
	store store.IdeaStore
	log   *zap.Logger
}

// New creates a Service. A nil logger is replaced with a no-op logger.
func New(s store.IdeaStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, log: log.Named("service")}
}

// Ideas returns every idea, most upvoted first. The slice is never nil.
func (s *Service) Ideas(ctx context.Context) ([]*store.Idea, error) {
	ideas, err := s.store.ListAll(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("ideas", "store").Inc()
		return nil, err
	}
	if ideas == nil {
		ideas = []*store.Idea{}
	}
	metrics.IdeasTotal.Set(float64(len(ideas)))
	return ideas, nil
}

// Idea returns the idea with the given id, or nil when it does not exist.
// Absence is not an error here.
func (s *Service) Idea(ctx context.Context, id string) (*store.Idea, error) {
	idea, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("idea", "store").Inc()
		return nil, err
	}
	return idea, nil
}

// CreateIdea validates text and stores it trimmed. Validation failures are
// returned before the store is touched.
func (s *Service) CreateIdea(ctx context.Context, text string) (*store.Idea, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("createIdea", KindOf(err).String()).Inc()
		return nil, err
	}

	idea, err := s.store.Insert(ctx, trimmed)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("createIdea", "store").Inc()
		return nil, err
	}

	metrics.IdeasCreatedTotal.Inc()
	s.log.Info("idea created", zap.String("id", idea.ID), zap.Int("length", utf8.RuneCountInString(idea.Text)))
	return idea, nil
}

// UpvoteIdea adds one upvote to the idea with the given id.
// It returns ErrIdeaNotFound when the id does not exist.
func (s *Service) UpvoteIdea(ctx context.Context, id string) (*store.Idea, error) {
	idea, err := s.store.IncrementUpvotes(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		metrics.OperationErrorsTotal.WithLabelValues("upvoteIdea", KindNotFound.String()).Inc()
		return nil, ErrIdeaNotFound
	}
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("upvoteIdea", "store").Inc()
		return nil, err
	}

	metrics.UpvotesTotal.Inc()
	s.log.Info("idea upvoted", zap.String("id", idea.ID), zap.Int("upvotes", idea.Upvotes))
	return idea, nil
}
