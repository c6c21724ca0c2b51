package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/http/response"
)

// bookEnvelope wraps a single book response.
type bookEnvelope struct {
	Book *domain.Book `json:"book"`
}

// booksEnvelope wraps the catalog search response.
type booksEnvelope struct {
	Books []*domain.Book `json:"books"`
}

// handleSearchBooks returns catalog books matching the query parameter.
// An empty query returns the whole catalog.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booksEnvelope{Books: books}, s.logger)
}

// handleGetBook returns a single catalog book by ID.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.bookService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, bookEnvelope{Book: book}, s.logger)
}
