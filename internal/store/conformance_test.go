package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// backdateFunc rewrites the stored creation time of an idea so ordering
// tests do not depend on wall-clock resolution.
type backdateFunc func(t *testing.T, id string, at time.Time)

// runIdeaStoreTests exercises the IdeaStore contract against one backend.
func runIdeaStoreTests(t *testing.T, newStore func(t *testing.T) (IdeaStore, backdateFunc)) {
	t.Run("insert returns fresh record", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()

		idea, err := s.Insert(ctx, "Build a treehouse")
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if idea.ID == "" {
			t.Error("id is empty")
		}
		if idea.Text != "Build a treehouse" {
			t.Errorf("text = %q, want %q", idea.Text, "Build a treehouse")
		}
		if idea.Upvotes != 0 {
			t.Errorf("upvotes = %d, want 0", idea.Upvotes)
		}
		if idea.CreatedAt.IsZero() {
			t.Error("created_at is zero")
		}

		got, err := s.GetByID(ctx, idea.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ID != idea.ID || got.Text != idea.Text || got.Upvotes != 0 {
			t.Errorf("GetByID = %+v, want %+v", got, idea)
		}
		if !got.CreatedAt.Equal(idea.CreatedAt) {
			t.Errorf("created_at = %v, want %v", got.CreatedAt, idea.CreatedAt)
		}
	})

	t.Run("insert assigns unique ids", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()

		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			idea, err := s.Insert(ctx, "same text")
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if seen[idea.ID] {
				t.Fatalf("duplicate id %q", idea.ID)
			}
			seen[idea.ID] = true
		}
	})

	t.Run("insert keeps multi-byte text", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()

		text := strings.Repeat("é", 280)
		idea, err := s.Insert(ctx, text)
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		got, err := s.GetByID(ctx, idea.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Text != text {
			t.Errorf("text round-trip mismatch: got %d bytes, want %d", len(got.Text), len(text))
		}
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.GetByID(context.Background(), "nonexistent-id")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("list empty", func(t *testing.T) {
		s, _ := newStore(t)
		ideas, err := s.ListAll(context.Background())
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(ideas) != 0 {
			t.Errorf("len = %d, want 0", len(ideas))
		}
	})

	t.Run("list orders by upvotes then recency", func(t *testing.T) {
		s, backdate := newStore(t)
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

		oldPopular := mustInsert(t, s, "old popular")
		newPopular := mustInsert(t, s, "new popular")
		oldQuiet := mustInsert(t, s, "old quiet")
		newQuiet := mustInsert(t, s, "new quiet")

		backdate(t, oldPopular.ID, base)
		backdate(t, newPopular.ID, base.Add(time.Hour))
		backdate(t, oldQuiet.ID, base.Add(2*time.Hour))
		backdate(t, newQuiet.ID, base.Add(3*time.Hour))

		for _, id := range []string{oldPopular.ID, newPopular.ID} {
			for i := 0; i < 2; i++ {
				if _, err := s.IncrementUpvotes(ctx, id); err != nil {
					t.Fatalf("IncrementUpvotes: %v", err)
				}
			}
		}

		ideas, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		want := []string{"new popular", "old popular", "new quiet", "old quiet"}
		if len(ideas) != len(want) {
			t.Fatalf("len = %d, want %d", len(ideas), len(want))
		}
		for i, w := range want {
			if ideas[i].Text != w {
				t.Errorf("ideas[%d] = %q, want %q", i, ideas[i].Text, w)
			}
		}

		again, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		for i := range ideas {
			if again[i].ID != ideas[i].ID || again[i].Upvotes != ideas[i].Upvotes {
				t.Errorf("second ListAll differs at %d: %+v vs %+v", i, again[i], ideas[i])
			}
		}
	})

	t.Run("increment adds exactly one", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()

		target := mustInsert(t, s, "target")
		other := mustInsert(t, s, "other")

		for want := 1; want <= 3; want++ {
			idea, err := s.IncrementUpvotes(ctx, target.ID)
			if err != nil {
				t.Fatalf("IncrementUpvotes: %v", err)
			}
			if idea.Upvotes != want {
				t.Errorf("upvotes = %d, want %d", idea.Upvotes, want)
			}
			if idea.Text != "target" {
				t.Errorf("text = %q, want %q", idea.Text, "target")
			}
			if !idea.CreatedAt.Equal(target.CreatedAt) {
				t.Errorf("created_at changed: %v -> %v", target.CreatedAt, idea.CreatedAt)
			}
		}

		got, err := s.GetByID(ctx, other.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Upvotes != 0 {
			t.Errorf("other upvotes = %d, want 0", got.Upvotes)
		}
	})

	t.Run("increment missing returns ErrNotFound", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		mustInsert(t, s, "bystander")

		_, err := s.IncrementUpvotes(ctx, "nonexistent-id")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}

		ideas, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(ideas) != 1 || ideas[0].Upvotes != 0 {
			t.Errorf("store changed after missing increment: %+v", ideas)
		}
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		idea := mustInsert(t, s, "race")

		const n = 25
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.IncrementUpvotes(ctx, idea.ID); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("IncrementUpvotes: %v", err)
		}

		got, err := s.GetByID(ctx, idea.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Upvotes != n {
			t.Errorf("upvotes = %d, want %d", got.Upvotes, n)
		}
	})
}

func mustInsert(t *testing.T, s IdeaStore, text string) *Idea {
	t.Helper()
	idea, err := s.Insert(context.Background(), text)
	if err != nil {
		t.Fatalf("Insert(%q): %v", text, err)
	}
	return idea
}
