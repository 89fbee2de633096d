package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/graph"
	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
)

func newGraphQLServer(t *testing.T) string {
	t.Helper()
	svc := service.New(store.NewMemoryStore(), zap.NewNop())
	schema, err := graph.NewSchema(svc)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	srv := httptest.NewServer(graph.NewHandler(schema, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runIdeas(t *testing.T, endpoint string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newIdeasCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--endpoint", endpoint))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIdeasCmd_AddListUpvote(t *testing.T) {
	endpoint := newGraphQLServer(t)

	out, errOut, err := runIdeas(t, endpoint, "add", "Build", "a", "treehouse")
	if err != nil {
		t.Fatalf("add: %v (stderr: %s)", err, errOut)
	}
	if !strings.Contains(out, "Build a treehouse") {
		t.Errorf("add output = %q, want idea text", out)
	}
	if !strings.Contains(errOut, "Idea shared!") {
		t.Errorf("add stderr = %q, want success notice", errOut)
	}

	var id string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "ID:") {
			id = strings.TrimSpace(strings.TrimPrefix(line, "ID:"))
		}
	}
	if id == "" {
		t.Fatalf("no ID in add output: %q", out)
	}

	out, _, err = runIdeas(t, endpoint, "upvote", id)
	if err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if !strings.Contains(out, "Upvotes: 1") {
		t.Errorf("upvote output = %q, want 1 upvote", out)
	}

	out, _, err = runIdeas(t, endpoint, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "1 idea(s)") {
		t.Errorf("list output = %q, want count", out)
	}
}

func TestIdeasCmd_RejectsEmpty(t *testing.T) {
	endpoint := newGraphQLServer(t)
	_, errOut, err := runIdeas(t, endpoint, "add", "   ")
	if err != errReported {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(errOut, "Idea cannot be empty") {
		t.Errorf("stderr = %q, want empty notice", errOut)
	}
}

func TestIdeasCmd_UpvoteMissing(t *testing.T) {
	endpoint := newGraphQLServer(t)
	_, errOut, err := runIdeas(t, endpoint, "upvote", "nonexistent-id")
	if err != errReported {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(errOut, "Failed to upvote: Idea not found") {
		t.Errorf("stderr = %q, want upvote failure notice", errOut)
	}
}
