package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/service"
)

// ideasAPIHandler provides REST handlers for ideas.
type ideasAPIHandler struct {
	svc *service.Service
	log *zap.Logger
}

// registerIdeaRoutes registers idea routes on r.
func registerIdeaRoutes(r chi.Router, svc *service.Service, log *zap.Logger) {
	h := &ideasAPIHandler{svc: svc, log: log}
	r.Get("/ideas", h.List)
	r.Post("/ideas", h.Create)
	r.Get("/ideas/{id}", h.Get)
	r.Post("/ideas/{id}/upvote", h.Upvote)
}

// List returns all ideas, most upvoted first.
// GET /api/v1/ideas
//
// @Summary      List ideas
// @Description  Returns every idea ordered by upvotes, newest first among ties.
// @Tags         Ideas
// @Produce      json
// @Success      200  {object}  IdeaListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ideas [get]
func (h *ideasAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.svc.Ideas(r.Context())
	if err != nil {
		h.log.Error("list ideas", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	resp := IdeaListResponse{Ideas: make([]IdeaResponse, 0, len(ideas))}
	for _, i := range ideas {
		resp.Ideas = append(resp.Ideas, toIdeaResponse(i))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Create validates and stores a new idea.
// POST /api/v1/ideas
//
// @Summary      Create an idea
// @Description  Trims the text and stores it with zero upvotes. Text must be 1 to 280 characters.
// @Tags         Ideas
// @Accept       json
// @Produce      json
// @Param        body  body      CreateIdeaRequest  true  "Idea to create"
// @Success      201   {object}  IdeaResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /ideas [post]
func (h *ideasAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	idea, err := h.svc.CreateIdea(r.Context(), req.Text)
	if err != nil {
		if service.KindOf(err) == 0 {
			h.log.Error("create idea", zap.Error(err))
		}
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toIdeaResponse(idea))
}

// Get returns a single idea by ID.
// GET /api/v1/ideas/{id}
//
// @Summary      Get an idea
// @Description  Returns a single idea by ID.
// @Tags         Ideas
// @Produce      json
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  IdeaResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ideas/{id} [get]
func (h *ideasAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	idea, err := h.svc.Idea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error("get idea", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}
	if idea == nil {
		h.writeServiceError(w, service.ErrIdeaNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, toIdeaResponse(idea))
}

// Upvote adds one upvote to an idea.
// POST /api/v1/ideas/{id}/upvote
//
// @Summary      Upvote an idea
// @Description  Atomically increments the idea's upvote count by one and returns the updated idea.
// @Tags         Ideas
// @Produce      json
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  IdeaResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ideas/{id}/upvote [post]
func (h *ideasAPIHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	idea, err := h.svc.UpvoteIdea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if service.KindOf(err) == 0 {
			h.log.Error("upvote idea", zap.Error(err))
		}
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toIdeaResponse(idea))
}
