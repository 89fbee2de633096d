package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const ideaColumns = `id, text, upvotes, created_at`

// SQLStore is the sqlx-backed implementation of IdeaStore.
// It works against every driver opened by db.New.
type SQLStore struct {
	db *sqlx.DB
}

var _ IdeaStore = (*SQLStore)(nil)

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// q rebinds ? placeholders to the driver's native format.
func (s *SQLStore) q(query string) string { return s.db.Rebind(query) }

// supportsReturning reports whether UPDATE ... RETURNING is available.
// MySQL is the only supported driver without it.
func (s *SQLStore) supportsReturning() bool {
	return s.db.DriverName() != "mysql"
}

// ListAll returns all ideas, most popular first, newest first within a tie.
func (s *SQLStore) ListAll(ctx context.Context) ([]*Idea, error) {
	ideas := []*Idea{}
	err := s.db.SelectContext(ctx, &ideas, `
		SELECT `+ideaColumns+` FROM ideas
		ORDER BY upvotes DESC, created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

// GetByID returns the idea matching id, or ErrNotFound.
func (s *SQLStore) GetByID(ctx context.Context, id string) (*Idea, error) {
	var idea Idea
	err := s.db.GetContext(ctx, &idea, s.q(`SELECT `+ideaColumns+` FROM ideas WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// Insert creates a new idea with a fresh UUID and zero upvotes.
func (s *SQLStore) Insert(ctx context.Context, text string) (*Idea, error) {
	idea := &Idea{
		ID:        uuid.New().String(),
		Text:      text,
		Upvotes:   0,
		CreatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO ideas (id, text, upvotes, created_at)
		VALUES (?, ?, ?, ?)
	`), idea.ID, idea.Text, idea.Upvotes, idea.CreatedAt)
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// IncrementUpvotes atomically adds one upvote and returns the updated row.
// The counter is never read into Go and written back; the database applies
// upvotes = upvotes + 1 itself.
func (s *SQLStore) IncrementUpvotes(ctx context.Context, id string) (*Idea, error) {
	if !s.supportsReturning() {
		return s.incrementInTx(ctx, id)
	}

	var idea Idea
	err := s.db.GetContext(ctx, &idea, s.q(`
		UPDATE ideas SET upvotes = upvotes + 1
		WHERE id = ?
		RETURNING `+ideaColumns), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// incrementInTx is the MySQL path. The UPDATE holds the row lock until
// commit, so the SELECT in the same transaction sees exactly this increment.
func (s *SQLStore) incrementInTx(ctx context.Context, id string) (*Idea, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.q(`UPDATE ideas SET upvotes = upvotes + 1 WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	var idea Idea
	if err := tx.GetContext(ctx, &idea, s.q(`SELECT `+ideaColumns+` FROM ideas WHERE id = ?`), id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &idea, nil
}

// Count returns the number of stored ideas.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ideas`); err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
