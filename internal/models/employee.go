package models

import "time"

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasEmail reports whether reminders can be delivered to the employee.
func (e Employee) HasEmail() bool {
	return e.Email != ""
}

// CategoryGroup is one category's slice of the directory.
type CategoryGroup struct {
	Category  Category   `json:"category"`
	Employees []Employee `json:"employees"`
}

// RosterEntry is a single line of a bulk seed file.
type RosterEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Email    string `json:"email,omitempty"`
}
