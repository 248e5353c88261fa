package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/credstore"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/memory"
	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// fakeBackend implements driven.Backend for service tests. Login mimics the
// real client by persisting credentials on success.
type fakeBackend struct {
	creds    driven.CredentialStore
	loginErr error
	user     model.UserRecord
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (model.UserRecord, error) {
	if f.loginErr != nil {
		return model.UserRecord{}, f.loginErr
	}
	pair := model.CredentialPair{AccessToken: "A1", RefreshToken: "R1"}
	if err := f.creds.SetAll(ctx, pair, f.user); err != nil {
		return model.UserRecord{}, err
	}
	return f.user, nil
}

func (f *fakeBackend) CheckIP(context.Context) (model.Verdict, error) {
	return model.Verdict{Allowed: true}, nil
}

func (f *fakeBackend) Profile(context.Context) (model.UserRecord, error) {
	return f.user, nil
}

func (f *fakeBackend) Reports(context.Context, model.ReportFilter) ([]model.Report, error) {
	return []model.Report{}, nil
}

func (f *fakeBackend) CreateReport(context.Context, model.ReportDraft) (model.Report, error) {
	return model.Report{}, nil
}

func (f *fakeBackend) MySummary(context.Context, model.DateRange) (model.Summary, error) {
	return model.Summary{}, nil
}

func (f *fakeBackend) Activities(context.Context) ([]model.Activity, error) {
	return []model.Activity{}, nil
}

func (f *fakeBackend) MySchedule(context.Context) (model.Schedule, error) {
	return model.Schedule{}, nil
}

func newSessionFixture() (*SessionService, *credstore.Store, *VerdictCache) {
	creds := credstore.New(memory.NewSessionStore())
	verdicts := NewVerdictCache(memory.NewSessionStore())
	backend := &fakeBackend{creds: creds, user: model.UserRecord{ID: 1, Username: "alice"}}
	return NewSessionService(backend, creds, verdicts), creds, verdicts
}

func TestSessionService_LoginLogout(t *testing.T) {
	svc, creds, verdicts := newSessionFixture()
	ctx := context.Background()

	user, err := svc.Login(ctx, "alice", "x")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, svc.IsAuthenticated(ctx))

	got, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)

	verdicts.Put(ctx, model.Verdict{Allowed: true, ObservedAt: gateNow})

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated(ctx))
	assert.False(t, creds.IsAuthenticated(ctx))
	_, ok = svc.CurrentUser(ctx)
	assert.False(t, ok)
	_, ok = verdicts.Get(ctx)
	assert.False(t, ok, "logout drops the cached verdict")
}

func TestSessionService_ExpiredSignal(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	assert.False(t, svc.Expired())

	svc.MarkExpired()
	svc.MarkExpired() // idempotent
	assert.True(t, svc.Expired())

	_, err := svc.Login(ctx, "alice", "x")
	require.NoError(t, err)
	assert.False(t, svc.Expired(), "a new login resets the expired state")
}

func TestHealthService_Status(t *testing.T) {
	creds := credstore.New(memory.NewSessionStore())
	svc := NewHealthService(memory.NewSessionStore(), creds, "production", "ProDus", "1.0.0")
	ctx := context.Background()

	status := svc.Status(ctx)
	assert.Equal(t, "ok", status.Status)
	assert.False(t, status.Authenticated)
	assert.Equal(t, "production", status.Environment)

	require.NoError(t, creds.SetAll(ctx,
		model.CredentialPair{AccessToken: "A1", RefreshToken: "R1"},
		model.UserRecord{ID: 1, Username: "alice"},
	))
	assert.True(t, svc.Status(ctx).Authenticated)
}
