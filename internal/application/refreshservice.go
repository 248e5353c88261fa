package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// TokenRefresher is the slice of the backend client the refresh service needs.
type TokenRefresher interface {
	// Refresh renews the access token, reporting success.
	Refresh(ctx context.Context) bool

	// AccessTokenExpiry returns the stored access token's expiry, with
	// ok=false when it cannot be determined.
	AccessTokenExpiry(ctx context.Context) (time.Time, bool)
}

// RefreshService keeps credentials fresh for the whole session by renewing
// the access token shortly before it expires, instead of waiting for a 401 on
// a real request. A failed proactive renewal is only logged; the executor's
// own renew-and-retry path remains the authority on session expiry.
type RefreshService struct {
	refresher TokenRefresher
	creds     driven.CredentialStore
	interval  time.Duration
	lead      time.Duration
	now       func() time.Time
}

// NewRefreshService creates a RefreshService. interval is how often the token
// is inspected; lead is how long before expiry a renewal is triggered.
func NewRefreshService(refresher TokenRefresher, creds driven.CredentialStore, interval, lead time.Duration) *RefreshService {
	return &RefreshService{
		refresher: refresher,
		creds:     creds,
		interval:  interval,
		lead:      lead,
		now:       time.Now,
	}
}

// Start runs the renewal loop until the context is canceled.
func (s *RefreshService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one inspection, renewing when the token is inside the lead
// window. Tokens without a readable expiry are left to the on-demand path.
func (s *RefreshService) tick(ctx context.Context) {
	if !s.creds.IsAuthenticated(ctx) {
		return
	}

	expiry, ok := s.refresher.AccessTokenExpiry(ctx)
	if !ok {
		return
	}

	remaining := expiry.Sub(s.now())
	if remaining > s.lead {
		return
	}

	if s.refresher.Refresh(ctx) {
		slog.Info("access token renewed", "was_remaining", remaining.Round(time.Second))
	} else {
		slog.Warn("proactive token renewal failed", "remaining", remaining.Round(time.Second))
	}
}
