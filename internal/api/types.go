package api

import (
	"time"

	"github.com/joestump/ideaboard/internal/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"Idea not found"`
	Code  string `json:"code" example:"NOT_FOUND"`
}

// CreateIdeaRequest is the request body for POST /api/v1/ideas.
type CreateIdeaRequest struct {
	Text string `json:"text" example:"Build a treehouse"`
}

// IdeaResponse is the JSON representation of a single idea.
type IdeaResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Upvotes   int       `json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// IdeaListResponse is the response for GET /api/v1/ideas.
type IdeaListResponse struct {
	Ideas []IdeaResponse `json:"ideas"`
}

func toIdeaResponse(i *store.Idea) IdeaResponse {
	return IdeaResponse{
		ID:        i.ID,
		Text:      i.Text,
		Upvotes:   i.Upvotes,
		CreatedAt: i.CreatedAt,
	}
}
