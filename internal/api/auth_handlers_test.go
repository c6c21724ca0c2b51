package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authBody struct {
	User struct {
		Token    string `json:"token"`
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func TestAuthFlow(t *testing.T) {
	ts := setupTestServer(t)

	// Register.
	w := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "reader",
		"password": "Sup3r-secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var registered authBody
	decodeBody(t, w, &registered)
	assert.NotEmpty(t, registered.User.Token)
	assert.NotEmpty(t, registered.User.ID)
	assert.Equal(t, "reader", registered.User.Username)

	// The token works against /me and is echoed back.
	w = ts.request(t, http.MethodGet, "/api/auth/me", registered.User.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me authBody
	decodeBody(t, w, &me)
	assert.Equal(t, registered.User.ID, me.User.ID)
	assert.Equal(t, registered.User.Username, me.User.Username)
	assert.Equal(t, registered.User.Token, me.User.Token)

	// Login returns the same identity.
	w = ts.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "reader",
		"password": "Sup3r-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn authBody
	decodeBody(t, w, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.User.Token)
}

func TestRegister_Validation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name        string
		body        map[string]string
		wantMessage string
	}{
		{
			name:        "missing username",
			body:        map[string]string{"password": "Sup3r-secret"},
			wantMessage: "username can't be blank",
		},
		{
			name:        "missing password",
			body:        map[string]string{"username": "reader"},
			wantMessage: "password can't be blank",
		},
		{
			name:        "weak password",
			body:        map[string]string{"username": "reader", "password": "password"},
			wantMessage: "password is not strong enough",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.request(t, http.MethodPost, "/api/auth/register", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMessage, errorMessage(t, w))
		})
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "reader",
		"password": "Sup3r-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "Reader",
		"password": "An0ther-secret",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username taken", errorMessage(t, w))
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "reader",
		"password": "Sup3r-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"username": "reader", "password": "Wr0ng-secret"}},
		{"unknown user", map[string]string{"username": "nobody", "password": "Sup3r-secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.request(t, http.MethodPost, "/api/auth/login", "", tt.body)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "invalid username or password", errorMessage(t, w))
		})
	}
}

func TestMe_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.request(t, http.MethodGet, "/api/auth/me", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/api/auth/register", "", "not an object")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
