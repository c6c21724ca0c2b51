package api

import (
	"encoding/json"
	"net/http"

	"github.com/bookshelfapp/bookshelf-server/internal/http/response"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// userEnvelope wraps an authenticated user for auth endpoint responses.
type userEnvelope struct {
	User *service.AuthenticatedUser `json:"user"`
}

// handleRegister creates a new user account and returns it with a session token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	user, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, userEnvelope{User: user}, s.logger)
}

// handleLogin verifies credentials and returns the user with a fresh token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	user, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, userEnvelope{User: user}, s.logger)
}

// handleGetCurrentUser returns the authenticated user, echoing the token
// the client presented.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := getUser(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	response.Success(w, userEnvelope{User: &service.AuthenticatedUser{
		Token:    getToken(r.Context()),
		ID:       user.ID,
		Username: user.Username,
	}}, s.logger)
}
