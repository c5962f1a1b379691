package constants

const (
	// DateFormat is the civil date format used for every stored date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultTimezone anchors "today" for submissions, reminders and statistics
	DefaultTimezone = "Asia/Kolkata"
)
