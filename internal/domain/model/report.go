package model

// Report is a single tracked time entry as returned by the backend.
type Report struct {
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

// ReportDraft carries the fields needed to create a new report.
type ReportDraft struct {
	Activity  int64  `json:"activity"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes,omitempty"`
}

// ReportFilter narrows a report listing. Zero-value fields are omitted from
// the query string.
type ReportFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

// DateRange bounds a summary query. Either side may be empty.
type DateRange struct {
	StartDate string
	EndDate   string
}

// Summary aggregates tracked hours over a date range.
type Summary struct {
	TotalHours    float64        `json:"total_hours"`
	ExpectedHours float64        `json:"expected_hours,omitempty"`
	StartDate     string         `json:"start_date,omitempty"`
	EndDate       string         `json:"end_date,omitempty"`
	ByActivity    []ActivityHour `json:"by_activity,omitempty"`
}

// ActivityHour is one row of a per-activity hour breakdown.
type ActivityHour struct {
	Activity     int64   `json:"activity"`
	ActivityName string  `json:"activity_name,omitempty"`
	Hours        float64 `json:"hours"`
}
