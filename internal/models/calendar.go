package models

import "time"

type DayStatus string

const (
	DayHoliday DayStatus = "holiday"
	DayWorking DayStatus = "working"
)

func (s DayStatus) Valid() bool {
	return s == DayHoliday || s == DayWorking
}

type CalendarDay struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Status    DayStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResolvedDay is a calendar date after defaults have been applied.
type ResolvedDay struct {
	Date     string    `json:"date"`
	Status   DayStatus `json:"status"`
	Explicit bool      `json:"explicit"`
}

func (d ResolvedDay) IsWorking() bool {
	return d.Status == DayWorking
}
