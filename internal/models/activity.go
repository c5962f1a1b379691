package models

import "time"

// Task is one project/task line of a WorkActivity. OldTaskName, IsUpdated,
// FirstWorkedOnDate and the timestamps are owned by the merge engine.
type Task struct {
	ID                string     `json:"id"`
	ProjectName       string     `json:"projectName"`
	TaskName          string     `json:"taskName"`
	OutcomeLink       string     `json:"outcomeLink"`
	Notes             string     `json:"notes"`
	OldTaskName       string     `json:"oldTaskName,omitempty"`
	IsUpdated         bool       `json:"isUpdated"`
	FirstWorkedOnDate string     `json:"firstWorkedOnDate,omitempty"` // YYYY-MM-DD
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// WorkActivity is one employee's submission for one civil date.
type WorkActivity struct {
	ID           string    `json:"id"`
	EmployeeName string    `json:"employeeName"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Tasks        []Task    `json:"tasks"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TaskInput is the submitter-controlled part of a Task.
type TaskInput struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	TaskName    string `json:"taskName"`
	OutcomeLink string `json:"outcomeLink"`
	Notes       string `json:"notes"`
}
