package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/pageza/nutriapp/backend/internal/service"
)

func newGoogleServer(t *testing.T, audience string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v2/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "good-token" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": "invalid_token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"audience":       audience,
			"issued_to":      audience,
			"email":          "cook@example.com",
			"verified_email": true,
			"expires_in":     3600,
		})
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "g-123",
			"email":          "cook@example.com",
			"verified_email": true,
			"name":           "Google Cook",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerifier(t *testing.T) {
	srv := newGoogleServer(t, "client-1")
	ctx := context.Background()

	verifier := service.NewGoogleVerifier("client-1", option.WithEndpoint(srv.URL+"/"))
	identity, err := verifier.Verify(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "g-123", identity.Subject)
	assert.Equal(t, "cook@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Google Cook", identity.Name)

	_, err = verifier.Verify(ctx, "bad-token")
	assert.Error(t, err)

	wrongAudience := service.NewGoogleVerifier("client-2", option.WithEndpoint(srv.URL+"/"))
	_, err = wrongAudience.Verify(ctx, "good-token")
	assert.Error(t, err)
}
