package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, localstore.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := localstore.NewMemoryStore()
	return New(server.URL, 5*time.Second, tokens), tokens
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	})
	require.NoError(t, tokens.Set(localstore.KeyToken, "tok-123"))

	var out map[string]any
	require.NoError(t, client.Get(context.Background(), "/ping", &out))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	var out map[string]any
	require.NoError(t, client.Get(context.Background(), "/ping", &out))
	assert.Empty(t, gotAuth)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field preferred", `{"error":"salle introuvable","message":"other"}`, "salle introuvable"},
		{"message field fallback", `{"message":"bad request"}`, "bad request"},
		{"status text fallback", `not json`, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			})

			err := client.Get(context.Background(), "/x", nil)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindServer, apiErr.Kind)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestClient_UnauthorizedPurgesToken(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid or expired token"}`))
	})
	require.NoError(t, tokens.Set(localstore.KeyToken, "stale"))

	err := client.Get(context.Background(), "/me", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindAuth, apiErr.Kind)
	assert.Equal(t, "invalid or expired token", apiErr.Message)

	_, ok := tokens.Get(localstore.KeyToken)
	assert.False(t, ok, "401 should purge the stored token")
}

func TestClient_TransportError(t *testing.T) {
	tokens := localstore.NewMemoryStore()
	client := New("http://127.0.0.1:0", time.Second, tokens)

	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestClient_NoContentResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out map[string]any
	assert.NoError(t, client.Patch(context.Background(), "/1/read", nil, &out))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("ID de notification invalide")
	assert.Equal(t, KindValidation, err.Kind)
	assert.EqualError(t, err, "ID de notification invalide")
}
