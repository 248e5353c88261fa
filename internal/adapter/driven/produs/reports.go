package produs

import (
	"context"
	"net/url"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// Reports lists the user's reports, optionally filtered by date range and status.
func (c *Client) Reports(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	q := url.Values{}
	if filter.StartDate != "" {
		q.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("end_date", filter.EndDate)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}

	endpoint := "/reports/"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reports []model.Report
	if err := c.Get(ctx, endpoint, &reports); err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return reports, nil
}

// CreateReport creates a new time report and returns the backend's stored view of it.
func (c *Client) CreateReport(ctx context.Context, draft model.ReportDraft) (model.Report, error) {
	var report model.Report
	if err := c.Post(ctx, "/reports/", draft, &report); err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// MySummary fetches the user's aggregate hour summary over an optional date range.
func (c *Client) MySummary(ctx context.Context, r model.DateRange) (model.Summary, error) {
	q := url.Values{}
	if r.StartDate != "" {
		q.Set("start_date", r.StartDate)
	}
	if r.EndDate != "" {
		q.Set("end_date", r.EndDate)
	}

	endpoint := "/reports/my_summary/"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var summary model.Summary
	if err := c.Get(ctx, endpoint, &summary); err != nil {
		return model.Summary{}, err
	}
	return summary, nil
}
