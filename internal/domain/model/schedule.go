package model

// Schedule is the user's current assigned work schedule.
type Schedule struct {
	ID      int64          `json:"id"`
	Entries []ScheduleSlot `json:"entries"`
}

// ScheduleSlot is a single weekday time slot within a schedule.
type ScheduleSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
