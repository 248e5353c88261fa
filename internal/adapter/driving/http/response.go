package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SebasHerPorras/produs-panel/internal/application"
	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// LoginRequest is the JSON body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the JSON representation of the logged-in user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// SessionResponse is the JSON representation of the local session state.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Expired       bool          `json:"expired"`
	User          *UserResponse `json:"user,omitempty"`
}

// ReportResponse is the JSON representation of a time report.
type ReportResponse struct {
	ID           int64   `json:"id"`
	Activity     int64   `json:"activity"`
	ActivityName string  `json:"activity_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        float64 `json:"hours,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Status       string  `json:"status,omitempty"`
}

// CreateReportRequest is the JSON body for the create report endpoint.
type CreateReportRequest struct {
	Activity  int64  `json:"activity"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes,omitempty"`
}

// SummaryResponse is the JSON representation of the aggregate hour summary.
type SummaryResponse struct {
	TotalHours    float64                `json:"total_hours"`
	ExpectedHours float64                `json:"expected_hours,omitempty"`
	StartDate     string                 `json:"start_date,omitempty"`
	EndDate       string                 `json:"end_date,omitempty"`
	ByActivity    []ActivityHourResponse `json:"by_activity"`
}

// ActivityHourResponse is one row of the per-activity hour breakdown.
type ActivityHourResponse struct {
	Activity     int64   `json:"activity"`
	ActivityName string  `json:"activity_name,omitempty"`
	Hours        float64 `json:"hours"`
}

// ActivityResponse is the JSON representation of a reportable activity.
type ActivityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// ScheduleResponse is the JSON representation of the user's schedule.
type ScheduleResponse struct {
	ID      int64                  `json:"id"`
	Entries []ScheduleSlotResponse `json:"entries"`
}

// ScheduleSlotResponse is a single weekday time slot.
type ScheduleSlotResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
	Environment   string `json:"environment"`
	AppName       string `json:"app_name"`
	AppVersion    string `json:"app_version"`
	Time          string `json:"time"`
}

// toUserResponse converts a domain UserRecord to its JSON representation.
func toUserResponse(u model.UserRecord) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// toReportResponse converts a domain Report to its JSON representation.
func toReportResponse(r model.Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Activity:     r.Activity,
		ActivityName: r.ActivityName,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Hours:        r.Hours,
		Notes:        r.Notes,
		Status:       r.Status,
	}
}

// toSummaryResponse converts a domain Summary to its JSON representation.
func toSummaryResponse(s model.Summary) SummaryResponse {
	byActivity := make([]ActivityHourResponse, 0, len(s.ByActivity))
	for _, row := range s.ByActivity {
		byActivity = append(byActivity, ActivityHourResponse{
			Activity:     row.Activity,
			ActivityName: row.ActivityName,
			Hours:        row.Hours,
		})
	}

	return SummaryResponse{
		TotalHours:    s.TotalHours,
		ExpectedHours: s.ExpectedHours,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		ByActivity:    byActivity,
	}
}

// toActivityResponse converts a domain Activity to its JSON representation.
func toActivityResponse(a model.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Active:      a.Active,
	}
}

// toScheduleResponse converts a domain Schedule to its JSON representation.
func toScheduleResponse(s model.Schedule) ScheduleResponse {
	entries := make([]ScheduleSlotResponse, 0, len(s.Entries))
	for _, slot := range s.Entries {
		entries = append(entries, ScheduleSlotResponse{
			Day:       slot.Day,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return ScheduleResponse{ID: s.ID, Entries: entries}
}

// toHealthResponse converts an application HealthStatus to its JSON representation.
func toHealthResponse(h application.HealthStatus) HealthResponse {
	return HealthResponse{
		Status:        h.Status,
		Authenticated: h.Authenticated,
		Environment:   h.Environment,
		AppName:       h.AppName,
		AppVersion:    h.AppVersion,
		Time:          time.Now().UTC().Format(time.RFC3339),
	}
}
