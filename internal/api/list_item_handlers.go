package api

import (
	"encoding/json"
	"net/http"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/bookshelfapp/bookshelf-server/internal/http/response"
)

// listItemEnvelope wraps a single list item response.
type listItemEnvelope struct {
	ListItem *dto.ListItem `json:"listItem"`
}

// listItemsEnvelope wraps the collection response.
type listItemsEnvelope struct {
	ListItems []*dto.ListItem `json:"listItems"`
}

// createListItemRequest is the body for creating a list item.
type createListItemRequest struct {
	BookID string `json:"bookId"`
}

// handleListListItems returns every list item owned by the authenticated user.
func (s *Server) handleListListItems(w http.ResponseWriter, r *http.Request) {
	user := getUser(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	items, err := s.listItemService.List(r.Context(), user)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, listItemsEnvelope{ListItems: items}, s.logger)
}

// handleCreateListItem adds a book to the authenticated user's reading list.
func (s *Server) handleCreateListItem(w http.ResponseWriter, r *http.Request) {
	user := getUser(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	var req createListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && r.ContentLength > 0 {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	item, err := s.listItemService.Create(r.Context(), user, req.BookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, listItemEnvelope{ListItem: item}, s.logger)
}

// handleGetListItem returns the list item resolved by the loadListItem middleware.
func (s *Server) handleGetListItem(w http.ResponseWriter, r *http.Request) {
	item := getListItem(r.Context())

	enriched, err := s.listItemService.Get(r.Context(), item)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, listItemEnvelope{ListItem: enriched}, s.logger)
}

// handleUpdateListItem applies a partial update to the resolved list item.
func (s *Server) handleUpdateListItem(w http.ResponseWriter, r *http.Request) {
	item := getListItem(r.Context())

	var update domain.ListItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	enriched, err := s.listItemService.Update(r.Context(), item, update)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, listItemEnvelope{ListItem: enriched}, s.logger)
}

// handleDeleteListItem removes the resolved list item.
func (s *Server) handleDeleteListItem(w http.ResponseWriter, r *http.Request) {
	item := getListItem(r.Context())

	if err := s.listItemService.Delete(r.Context(), item); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]bool{"success": true}, s.logger)
}
