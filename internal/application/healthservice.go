package application

import (
	"context"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// HealthStatus is the assembled health view served by the HTTP API.
type HealthStatus struct {
	Status        string
	Authenticated bool
	Environment   string
	AppName       string
	AppVersion    string
}

// HealthService reports the panel's own liveness: durable storage
// reachability plus the current authentication state. It deliberately makes
// no backend call, so the health endpoint stays useful when the remote API is
// down.
type HealthService struct {
	durable     driven.KeyValue
	creds       driven.CredentialStore
	environment string
	appName     string
	appVersion  string
}

// NewHealthService creates a HealthService with the required dependencies.
func NewHealthService(durable driven.KeyValue, creds driven.CredentialStore, environment, appName, appVersion string) *HealthService {
	return &HealthService{
		durable:     durable,
		creds:       creds,
		environment: environment,
		appName:     appName,
		appVersion:  appVersion,
	}
}

// Status probes durable storage and assembles the health view. A storage
// failure degrades the status rather than erroring: the process is still up.
func (s *HealthService) Status(ctx context.Context) HealthStatus {
	status := "ok"
	if _, _, err := s.durable.Get(ctx, "health_probe"); err != nil {
		status = "degraded"
	}

	return HealthStatus{
		Status:        status,
		Authenticated: s.creds.IsAuthenticated(ctx),
		Environment:   s.environment,
		AppName:       s.appName,
		AppVersion:    s.appVersion,
	}
}
