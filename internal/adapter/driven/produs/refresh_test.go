package produs_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/credstore"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/memory"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/produs"
	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

func TestRefresh_NoRefreshTokenNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"access": "A2"})
	})

	client, _ := newTestClient(t, mux)

	ok := client.Refresh(context.Background())
	assert.False(t, ok)
	assert.Equal(t, int32(0), calls.Load(), "no refresh token means no network call")
}

func TestRefresh_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "refresh is unauthenticated")
		writeJSON(w, http.StatusOK, map[string]any{"access": "A2", "refresh": "R2"})
	})

	client, creds := newTestClient(t, mux)
	seedCredentials(t, creds, "A1", "R1")
	ctx := context.Background()

	ok := client.Refresh(ctx)
	require.True(t, ok)

	access, _ := creds.GetAccess(ctx)
	assert.Equal(t, "A2", access)
	refresh, _ := creds.GetRefresh(ctx)
	assert.Equal(t, "R2", refresh)
}

func TestRefresh_RejectedReturnsFalse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "token is blacklisted"})
	})

	client, creds := newTestClient(t, mux)
	seedCredentials(t, creds, "A1", "R1")
	ctx := context.Background()

	assert.False(t, client.Refresh(ctx))

	// A failed refresh does not clear credentials by itself; only the
	// executor's unrecoverable-401 path does that.
	access, _ := creds.GetAccess(ctx)
	assert.Equal(t, "A1", access)
}

func TestRefresh_TransportErrorReturnsFalse(t *testing.T) {
	creds := credstore.New(memory.NewSessionStore())
	require.NoError(t, creds.SetAll(context.Background(),
		model.CredentialPair{AccessToken: "A1", RefreshToken: "R1"},
		model.UserRecord{ID: 1, Username: "alice"},
	))
	client := produs.NewWithHTTPClient(&http.Client{}, "http://127.0.0.1:0", creds, nil)

	assert.False(t, client.Refresh(context.Background()))
}

func TestRefresh_MalformedResponseReturnsFalse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"refresh":"R2"}`)) // no access token
	})

	client, creds := newTestClient(t, mux)
	seedCredentials(t, creds, "A1", "R1")

	assert.False(t, client.Refresh(context.Background()))

	access, _ := creds.GetAccess(context.Background())
	assert.Equal(t, "A1", access, "stored pair untouched on malformed response")
}
