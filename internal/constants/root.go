package constants

const (
	AppName            = "workform"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/workform/workform.db"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "workform-"
	BackupFileSuffix = ".db"

	// Session constants
	SessionCookieName = "admin-token"
	SessionTTLHours   = 24
	MinPasswordLength = 6

	// Dashboard constants
	RecentActivityLimit = 5
	RollingWeekDays     = 7
)
