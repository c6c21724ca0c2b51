package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUser     contextKey = "user"
	contextKeyToken    contextKey = "token"
	contextKeyListItem contextKey = "list_item"
)

// requireAuth is middleware that validates access tokens and attaches the
// authenticated user to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		tokenString := parts[1]

		user, err := s.authService.VerifyAccessToken(r.Context(), tokenString)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		ctx = context.WithValue(ctx, contextKeyToken, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loadListItem is middleware for routes under /list-items/{id}. It loads the
// item, enforces ownership, and attaches the item to the request context.
// Must be used after requireAuth.
func (s *Server) loadListItem(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := getUser(r.Context())
		if user == nil {
			response.Unauthorized(w, "Authentication required", s.logger)
			return
		}

		itemID := chi.URLParam(r, "id")
		item, err := s.listItemService.Resolve(r.Context(), user, itemID)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyListItem, item)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUser extracts the authenticated user from request context.
// Returns nil if not authenticated.
func getUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(contextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

// getToken extracts the presented access token from request context.
// Returns empty string if not available.
func getToken(ctx context.Context) string {
	if token, ok := ctx.Value(contextKeyToken).(string); ok {
		return token
	}
	return ""
}

// getListItem extracts the resolved list item from request context.
// Returns nil outside of /list-items/{id} routes.
func getListItem(ctx context.Context) *domain.ListItem {
	if item, ok := ctx.Value(contextKeyListItem).(*domain.ListItem); ok {
		return item
	}
	return nil
}
