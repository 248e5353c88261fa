package produs

import (
	"context"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
)

// Activities lists the activities available for reporting.
func (c *Client) Activities(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := c.Get(ctx, "/activities/", &activities); err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	return activities, nil
}

// MySchedule fetches the user's current schedule.
func (c *Client) MySchedule(ctx context.Context) (model.Schedule, error) {
	var schedule model.Schedule
	if err := c.Get(ctx, "/schedules/", &schedule); err != nil {
		return model.Schedule{}, err
	}
	return schedule, nil
}
