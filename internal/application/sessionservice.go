package application

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// SessionService owns the login/logout lifecycle and the session-expired
// signal. The backend's executor reports an unrecoverable authorization
// failure through MarkExpired rather than mutating any navigation state
// itself; the driving layer polls Expired to route the user back to login.
type SessionService struct {
	backend  driven.Backend
	creds    driven.CredentialStore
	verdicts *VerdictCache
	expired  atomic.Bool
}

// NewSessionService creates a SessionService with the required dependencies.
func NewSessionService(backend driven.Backend, creds driven.CredentialStore, verdicts *VerdictCache) *SessionService {
	return &SessionService{
		backend:  backend,
		creds:    creds,
		verdicts: verdicts,
	}
}

// Login authenticates against the backend. On success the backend has already
// persisted the credential pair and user record, and any previous expired
// state is reset.
func (s *SessionService) Login(ctx context.Context, username, password string) (model.UserRecord, error) {
	user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return model.UserRecord{}, err
	}
	s.expired.Store(false)
	slog.Info("session started", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Logout clears local credentials and the cached origin verdict. The backend
// keeps no server-side session to tear down.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.creds.ClearAll(ctx); err != nil {
		return err
	}
	s.verdicts.Clear(ctx)
	s.expired.Store(false)
	slog.Info("session ended")
	return nil
}

// CurrentUser returns the locally stored user record, with ok=false when
// nobody is logged in.
func (s *SessionService) CurrentUser(ctx context.Context) (model.UserRecord, bool) {
	user, ok, err := s.creds.GetUser(ctx)
	if err != nil || !ok {
		return model.UserRecord{}, false
	}
	return user, true
}

// IsAuthenticated reports whether an access token is stored.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	return s.creds.IsAuthenticated(ctx)
}

// MarkExpired records that the session ended because credential renewal
// failed. Wired as the executor's session-expired callback.
func (s *SessionService) MarkExpired() {
	if !s.expired.Swap(true) {
		slog.Warn("session expired, login required")
	}
}

// Expired reports whether the session ended with an unrecoverable
// authorization failure since the last login.
func (s *SessionService) Expired() bool {
	return s.expired.Load()
}
