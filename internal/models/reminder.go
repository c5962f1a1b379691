package models

import "fmt"

type ReminderType string

const (
	ReminderFirst  ReminderType = "first"
	ReminderSecond ReminderType = "second"
	ReminderFinal  ReminderType = "final"
)

// ReminderSlots maps the externally triggered endpoints to reminder types.
var ReminderSlots = map[string]ReminderType{
	"7pm":     ReminderFirst,
	"10pm":    ReminderSecond,
	"11-59pm": ReminderFinal,
}

func ParseReminderType(s string) (ReminderType, error) {
	switch ReminderType(s) {
	case ReminderFirst, ReminderSecond, ReminderFinal:
		return ReminderType(s), nil
	}
	return "", fmt.Errorf("invalid reminder type %q (want first, second or final)", s)
}

// ReminderResult is the per-employee outcome of a reminder batch.
type ReminderResult struct {
	Employee string `json:"employee"`
	Email    bool   `json:"email"`
	Slack    bool   `json:"slack"`
	Errors   struct {
		Email string `json:"email,omitempty"`
		Slack string `json:"slack,omitempty"`
	} `json:"errors"`
}

type ReminderReport struct {
	Total   int              `json:"total"`
	Results []ReminderResult `json:"results"`
}
