package constants

const (
	// Keyring entries
	KeyringSMTPPassword  = "smtp-password"
	KeyringSessionSecret = "session-secret"

	// Default server settings
	DefaultAddr     = ":8080"
	DefaultBaseURL  = "http://localhost:8080"
	DefaultSMTPPort = 587
	DefaultFromMail = "attendance@localhost"
)
