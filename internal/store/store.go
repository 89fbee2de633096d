package store

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when a requested idea does not exist.
var ErrNotFound = errors.New("not found")

// Idea represents a row in the ideas table.
type Idea struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	Upvotes   int       `db:"upvotes"`
	CreatedAt time.Time `db:"created_at"`
}

// IdeaStore exposes all idea data operations.
// Handlers and resolvers never query the backend directly; all access goes
// through this interface.
type IdeaStore interface {
	// ListAll returns every idea ordered by upvotes descending, then by
	// creation time descending.
	ListAll(ctx context.Context) ([]*Idea, error)

	// GetByID returns the idea matching id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Idea, error)

	// Insert stores a new idea with zero upvotes and the current time.
	// The text must already be validated and trimmed.
	Insert(ctx context.Context, text string) (*Idea, error)

	// IncrementUpvotes adds exactly one upvote to the idea matching id and
	// returns the updated row, or ErrNotFound. The increment is a single
	// atomic operation in the backend.
	IncrementUpvotes(ctx context.Context, id string) (*Idea, error)
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// now returns the creation timestamp used for new ideas. Microsecond
// precision is the finest every backend round-trips unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// sortIdeas orders ideas the same way the SQL backends do:
// upvotes DESC, created_at DESC, id DESC.
func sortIdeas(ideas []*Idea) {
	sort.SliceStable(ideas, func(i, j int) bool {
		a, b := ideas[i], ideas[j]
		if a.Upvotes != b.Upvotes {
			return a.Upvotes > b.Upvotes
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
