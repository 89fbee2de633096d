package handler

import (
	"net/http"

	"github.com/joestump/ideaboard/internal/build"
)

// PagesHandler serves the browser-facing pages. Both pages are static shells;
// the board and the explorer talk to /graphql from the browser.
type PagesHandler struct {
	graphqlPath string
}

// NewPagesHandler creates a PagesHandler whose pages target graphqlPath.
func NewPagesHandler(graphqlPath string) *PagesHandler {
	return &PagesHandler{graphqlPath: graphqlPath}
}

func (h *PagesHandler) page(title string) BasePage {
	return BasePage{
		Title:       title,
		Version:     build.Version,
		GraphQLPath: h.graphqlPath,
	}
}

// Board renders the idea board at GET /.
func (h *PagesHandler) Board(w http.ResponseWriter, r *http.Request) {
	render(w, "board.html", h.page("Idea Board"))
}

// GraphiQL renders the query explorer at GET /graphql.
func (h *PagesHandler) GraphiQL(w http.ResponseWriter, r *http.Request) {
	render(w, "graphiql.html", h.page("GraphiQL"))
}
