package models

type RecentActivity struct {
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"`
	TaskCount    int    `json:"taskCount"`
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	Date                 string           `json:"date"`
	TotalEmployees       int              `json:"totalEmployees"`
	SubmittedToday       int              `json:"submittedToday"`
	PendingToday         int              `json:"pendingToday"`
	TasksToday           int              `json:"tasksToday"`
	TasksThisWeek        int              `json:"tasksThisWeek"`
	TasksThisMonth       int              `json:"tasksThisMonth"`
	SubmissionRate       int              `json:"submissionRate"`
	RecentActivities     []RecentActivity `json:"recentActivities"`
	CategoryDistribution []CategoryCount  `json:"categoryDistribution"`
}
