package constants

const (
	AppName            = "auri"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/auri/auri.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is used when rendering dates for people, e.g. "March 15, 2024"
	DisplayDateFormat = "January 02, 2006"

	// ConnectionEnvVar holds a PostgreSQL connection string when the keyring is not used
	ConnectionEnvVar = "AURI_DB_CONNECTION"

	// Listing and statistics defaults
	DefaultPageSize   = 30
	DefaultStatsLimit = 10

	// Web server defaults
	DefaultAddr         = "127.0.0.1:4567"
	MaxImportBodySize   = "10M"
	ShutdownTimeoutSecs = 10

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "auri-"
	BackupFileSuffix = ".db"

	// ExportFilePrefix names downloaded exports: auri-export-YYYY-MM-DD.json
	ExportFilePrefix = "auri-export-"
)
