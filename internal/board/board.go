// Package board holds the presentation state for the idea board: the list
// of ideas as last seen, in-flight flags, and user-facing notices.
package board

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/joestump/ideaboard/internal/client"
)

// MaxTextLength mirrors the server-side limit for pre-validation.
const MaxTextLength = 280

// Gateway is the subset of client.Client the board needs.
type Gateway interface {
	Ideas(ctx context.Context) ([]client.Idea, error)
	Idea(ctx context.Context, id string) (*client.Idea, error)
	CreateIdea(ctx context.Context, text string) (*client.Idea, error)
	UpvoteIdea(ctx context.Context, id string) (*client.Idea, error)
}

// Notice is a dismissable message for the user.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

// ErrRejected is returned by Submit when local validation refused the text.
// The reason is in the most recent notice.
var ErrRejected = errors.New("idea rejected before submission")

// ErrNoIdea is returned when the gateway reports success without an idea.
var ErrNoIdea = errors.New("no idea returned")

// View is the board state. It is safe for concurrent use.
type View struct {
	gw Gateway

	mu         sync.Mutex
	ideas      []client.Idea
	loading    bool
	submitting bool
	upvoting   map[string]bool
	notices    []Notice
}

// NewView creates an empty board backed by gw.
func NewView(gw Gateway) *View {
	return &View{gw: gw, upvoting: make(map[string]bool)}
}

// Load replaces the board with the server's list. On failure the previous
// list is kept and an error notice is added.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	ideas, err := v.gw.Ideas(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.notify(Notice{Title: "Error loading ideas", Description: err.Error(), Destructive: true})
		return err
	}
	v.ideas = append([]client.Idea(nil), ideas...)
	return nil
}

// Show fetches a single idea without changing the board. It returns nil when
// the idea does not exist.
func (v *View) Show(ctx context.Context, id string) (*client.Idea, error) {
	idea, err := v.gw.Idea(ctx, id)
	if err != nil {
		v.mu.Lock()
		v.notify(Notice{Title: "Error loading idea", Description: err.Error(), Destructive: true})
		v.mu.Unlock()
		return nil, err
	}
	return idea, nil
}

// Submit validates text locally and creates the idea. The created idea is
// placed at the front of the board without refetching.
func (v *View) Submit(ctx context.Context, text string) (*client.Idea, error) {
	v.mu.Lock()
	if strings.TrimSpace(text) == "" {
		v.notify(Notice{Title: "Idea cannot be empty", Description: "Please write something before submitting.", Destructive: true})
		v.mu.Unlock()
		return nil, ErrRejected
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		v.notify(Notice{Title: "Idea too long", Description: "Please keep your idea under 280 characters.", Destructive: true})
		v.mu.Unlock()
		return nil, ErrRejected
	}
	v.submitting = true
	v.mu.Unlock()

	idea, err := v.gw.CreateIdea(ctx, text)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = false
	if err == nil && idea == nil {
		err = ErrNoIdea
	}
	if err != nil {
		v.notify(Notice{Title: "Failed to share idea", Description: err.Error(), Destructive: true})
		return nil, err
	}
	v.ideas = append([]client.Idea{*idea}, v.ideas...)
	v.notify(Notice{Title: "Idea shared!", Description: "Your idea has been added to the board."})
	return idea, nil
}

// Upvote upvotes the idea and replaces only that entry on the board. If the
// idea is not on the board yet it is added.
func (v *View) Upvote(ctx context.Context, id string) (*client.Idea, error) {
	v.mu.Lock()
	v.upvoting[id] = true
	v.mu.Unlock()

	idea, err := v.gw.UpvoteIdea(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.upvoting, id)
	if err == nil && idea == nil {
		err = ErrNoIdea
	}
	if err != nil {
		v.notify(Notice{Title: "Failed to upvote", Description: err.Error(), Destructive: true})
		return nil, err
	}
	replaced := false
	for i := range v.ideas {
		if v.ideas[i].ID == idea.ID {
			v.ideas[i] = *idea
			replaced = true
			break
		}
	}
	if !replaced {
		v.ideas = append(v.ideas, *idea)
	}
	return idea, nil
}

// Sorted returns the board ordered by upvotes, highest first. Ties keep
// their current board order.
func (v *View) Sorted() []client.Idea {
	v.mu.Lock()
	out := append([]client.Idea(nil), v.ideas...)
	v.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Upvotes > out[j].Upvotes })
	return out
}

// Loading reports whether a Load is in flight.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Submitting reports whether a Submit is in flight.
func (v *View) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting
}

// Upvoting reports whether an upvote for id is in flight.
func (v *View) Upvoting(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.upvoting[id]
}

// Notices returns the pending notices, oldest first.
func (v *View) Notices() []Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Notice(nil), v.notices...)
}

// DismissNotice removes the notice at index i. Out-of-range indexes are ignored.
func (v *View) DismissNotice(i int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i < 0 || i >= len(v.notices) {
		return
	}
	v.notices = append(v.notices[:i], v.notices[i+1:]...)
}

func (v *View) notify(n Notice) {
	v.notices = append(v.notices, n)
}
