package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawmarket/pkg/errors"
)

func newSignInServer(t *testing.T, handler http.HandlerFunc) *FirebaseAuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewFirebaseAuthClient(nil, "test-key")
	c.baseURL = srv.URL
	return c
}

func TestSignInSuccess(t *testing.T) {
	c := newSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cat@example.com", req.Email)
		assert.True(t, req.ReturnSecureToken)

		_ = json.NewEncoder(w).Encode(signInResponse{LocalID: "uid-1", IDToken: "id", RefreshToken: "rt", ExpiresIn: "3600"})
	})

	session, err := c.SignIn(context.Background(), "cat@example.com", "meow")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.UserID)
	assert.Equal(t, "id", session.IDToken)
	assert.Equal(t, "3600", session.ExpiresIn)
}

func TestSignInFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		code    string
	}{
		{"wrong password", http.StatusBadRequest, "INVALID_PASSWORD", errors.CodeUnauthorized},
		{"unknown email", http.StatusBadRequest, "EMAIL_NOT_FOUND", errors.CodeUnauthorized},
		{"backend down", http.StatusServiceUnavailable, "UNAVAILABLE", errors.CodeTransient},
		{"quota", http.StatusBadRequest, "TOO_MANY_ATTEMPTS_TRY_LATER", errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newSignInServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				var body identityError
				body.Error.Code = tt.status
				body.Error.Message = tt.message
				_ = json.NewEncoder(w).Encode(body)
			})

			_, err := c.SignIn(context.Background(), "cat@example.com", "meow")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestSignInWithoutAPIKey(t *testing.T) {
	c := NewFirebaseAuthClient(nil, "")

	_, err := c.SignIn(context.Background(), "cat@example.com", "meow")
	assert.True(t, errors.Is(err, errors.CodeInternal))
}
