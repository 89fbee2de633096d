package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joestump/ideaboard/internal/api"
	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
)

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	header http.Header
	status int
}

func (w *failingWriter) Header() http.Header       { return w.header }
func (w *failingWriter) WriteHeader(status int)    { w.status = status }
func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestIdeas_WriteFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := api.NewAPIRouter(api.Deps{
		Service: service.New(store.NewMemoryStore(), zap.NewNop()),
		Logger:  zap.New(core),
	})

	w := &failingWriter{header: http.Header{}}
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ideas", nil))

	if w.status != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.status, http.StatusOK)
	}
	entries := logs.FilterMessage("write response").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d write failures, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "broken pipe" {
		t.Errorf("logged error = %v, want %q", got, "broken pipe")
	}
}
