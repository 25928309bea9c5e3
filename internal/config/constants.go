package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./clubsite.db"

	// DefaultEnvFile is loaded before the environment is read, when present
	DefaultEnvFile = ".env"

	// DefaultMaxUploadBytes caps a single import upload (10 MiB)
	DefaultMaxUploadBytes = 10 << 20
)
