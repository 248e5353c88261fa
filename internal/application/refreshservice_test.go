package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/credstore"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/memory"
	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// fakeRefresher is a TokenRefresher with a scripted expiry and call counter.
type fakeRefresher struct {
	expiry    time.Time
	hasExpiry bool
	refreshOK bool
	refreshes int
}

func (f *fakeRefresher) Refresh(context.Context) bool {
	f.refreshes++
	return f.refreshOK
}

func (f *fakeRefresher) AccessTokenExpiry(context.Context) (time.Time, bool) {
	return f.expiry, f.hasExpiry
}

func newRefreshFixture(t *testing.T, authenticated bool) (*RefreshService, *fakeRefresher) {
	t.Helper()

	creds := credstore.New(memory.NewSessionStore())
	if authenticated {
		require.NoError(t, creds.SetAll(context.Background(),
			model.CredentialPair{AccessToken: "A1", RefreshToken: "R1"},
			model.UserRecord{ID: 1, Username: "alice"},
		))
	}

	refresher := &fakeRefresher{refreshOK: true}
	svc := NewRefreshService(refresher, creds, time.Minute, 2*time.Minute)
	svc.now = func() time.Time { return gateNow }
	return svc, refresher
}

func TestRefreshService_RenewsInsideLeadWindow(t *testing.T) {
	svc, refresher := newRefreshFixture(t, true)
	refresher.expiry = gateNow.Add(90 * time.Second)
	refresher.hasExpiry = true

	svc.tick(context.Background())

	assert.Equal(t, 1, refresher.refreshes)
}

func TestRefreshService_SkipsFreshToken(t *testing.T) {
	svc, refresher := newRefreshFixture(t, true)
	refresher.expiry = gateNow.Add(30 * time.Minute)
	refresher.hasExpiry = true

	svc.tick(context.Background())

	assert.Equal(t, 0, refresher.refreshes)
}

func TestRefreshService_SkipsWhenLoggedOut(t *testing.T) {
	svc, refresher := newRefreshFixture(t, false)
	refresher.expiry = gateNow.Add(-time.Minute)
	refresher.hasExpiry = true

	svc.tick(context.Background())

	assert.Equal(t, 0, refresher.refreshes)
}

func TestRefreshService_SkipsOpaqueToken(t *testing.T) {
	svc, refresher := newRefreshFixture(t, true)
	refresher.hasExpiry = false

	svc.tick(context.Background())

	assert.Equal(t, 0, refresher.refreshes, "tokens without a readable expiry are left to the on-demand path")
}

func TestRefreshService_RenewsAlreadyExpiredToken(t *testing.T) {
	svc, refresher := newRefreshFixture(t, true)
	refresher.expiry = gateNow.Add(-time.Minute)
	refresher.hasExpiry = true
	refresher.refreshOK = false // failure is logged, not escalated

	svc.tick(context.Background())

	assert.Equal(t, 1, refresher.refreshes)
}
