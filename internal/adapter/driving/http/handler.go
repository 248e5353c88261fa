// Package httphandler is the HTTP driving adapter that serves the local JSON API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SebasHerPorras/produs-panel/internal/application"
	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// Handler serves the local REST API consumed by the panel pages.
type Handler struct {
	backend driven.Backend
	session *application.SessionService
	health  *application.HealthService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	backend driven.Backend,
	session *application.SessionService,
	health *application.HealthService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		backend: backend,
		session: session,
		health:  health,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers all /api/v1 routes on the given mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/v1/login", h.Login)
	mux.HandleFunc("POST /api/v1/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/session", h.Session)
	mux.HandleFunc("GET /api/v1/me", h.Me)
	mux.HandleFunc("GET /api/v1/reports", h.ListReports)
	mux.HandleFunc("POST /api/v1/reports", h.CreateReport)
	mux.HandleFunc("GET /api/v1/reports/summary", h.Summary)
	mux.HandleFunc("GET /api/v1/activities", h.ListActivities)
	mux.HandleFunc("GET /api/v1/schedule", h.Schedule)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// Wrap applies the standard middleware stack to a handler.
func Wrap(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// Login authenticates against the backend and starts a local session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeBackendError(w, err, "login failed")
		return
	}

	resp := toUserResponse(user)
	writeJSON(w, http.StatusOK, resp)
}

// Logout ends the local session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the local session state: whether credentials are stored,
// whether the session expired since the last login, and the stored user.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{
		Authenticated: h.session.IsAuthenticated(r.Context()),
		Expired:       h.session.Expired(),
	}
	if user, ok := h.session.CurrentUser(r.Context()); ok {
		u := toUserResponse(user)
		resp.User = &u
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me fetches the current user's profile from the backend.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.backend.Profile(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "fetch profile failed")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ListReports returns the user's reports, filtered by the optional
// start_date, end_date, and status query parameters.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := model.ReportFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		Status:    r.URL.Query().Get("status"),
	}

	reports, err := h.backend.Reports(r.Context(), filter)
	if err != nil {
		h.writeBackendError(w, err, "list reports failed")
		return
	}

	resp := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		resp = append(resp, toReportResponse(report))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateReport creates a new time report.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Activity == 0 || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "activity, date, start_time and end_time are required")
		return
	}

	draft := model.ReportDraft{
		Activity:  req.Activity,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	}

	report, err := h.backend.CreateReport(r.Context(), draft)
	if err != nil {
		h.writeBackendError(w, err, "create report failed")
		return
	}
	writeJSON(w, http.StatusCreated, toReportResponse(report))
}

// Summary returns the user's aggregate hour summary over the optional
// start_date/end_date query parameters.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	dateRange := model.DateRange{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	summary, err := h.backend.MySummary(r.Context(), dateRange)
	if err != nil {
		h.writeBackendError(w, err, "fetch summary failed")
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// ListActivities returns the activities available for reporting.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.backend.Activities(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "list activities failed")
		return
	}

	resp := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		resp = append(resp, toActivityResponse(activity))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Schedule returns the user's current schedule.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.backend.MySchedule(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "fetch schedule failed")
		return
	}
	writeJSON(w, http.StatusOK, toScheduleResponse(schedule))
}

// Health returns the panel's own health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toHealthResponse(h.health.Status(r.Context())))
}

// writeBackendError maps a Backend error to an HTTP response: a session
// expiry becomes a 401 the pages treat as "go back to login", a backend
// rejection keeps its status and detail, anything else is a bad gateway.
func (h *Handler) writeBackendError(w http.ResponseWriter, err error, msg string) {
	var reqErr *driven.RequestError
	switch {
	case errors.Is(err, driven.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "session expired")
	case errors.As(err, &reqErr):
		writeError(w, reqErr.Status, reqErr.Detail)
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusBadGateway, "backend unavailable")
	}
}
