package api_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/api"
	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
	"github.com/joestump/ideaboard/internal/testutil"
)

// testEnv holds the router and the store behind it.
type testEnv struct {
	Router http.Handler
	Store  *store.SQLStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with a real store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	s := store.NewSQLStore(db)

	router := api.NewAPIRouter(api.Deps{
		Service: service.New(s, zap.NewNop()),
		Logger:  zap.NewNop(),
	})
	return &testEnv{Router: router, Store: s}
}
