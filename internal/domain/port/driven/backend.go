package driven

import (
	"context"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// OriginChecker performs the unauthenticated network-origin check. Split from
// Backend so the access gate depends only on the one call it makes.
type OriginChecker interface {
	// CheckIP asks the backend whether the client's network origin is allowed.
	CheckIP(ctx context.Context) (model.Verdict, error)
}

// Backend is the driven port for the remote time-tracking API. All
// authenticated calls transparently renew an expired access token and retry
// once; an unrecoverable authorization failure surfaces as a session-expired
// error after local credentials have been cleared.
type Backend interface {
	OriginChecker

	// Login exchanges credentials for a token pair and user record, persisting
	// both on success.
	Login(ctx context.Context, username, password string) (model.UserRecord, error)

	// Profile fetches the current user's profile.
	Profile(ctx context.Context) (model.UserRecord, error)

	// Reports lists the user's reports, optionally filtered.
	Reports(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)

	// CreateReport creates a new time report.
	CreateReport(ctx context.Context, draft model.ReportDraft) (model.Report, error)

	// MySummary fetches the user's aggregate hour summary.
	MySummary(ctx context.Context, r model.DateRange) (model.Summary, error)

	// Activities lists the activities available for reporting.
	Activities(ctx context.Context) ([]model.Activity, error)

	// MySchedule fetches the user's current schedule.
	MySchedule(ctx context.Context) (model.Schedule, error)
}
