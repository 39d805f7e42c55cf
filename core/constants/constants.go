package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Time layouts used across DTOs
const (
	DateLayout = "2006-01-02"
)

// Asynq task types
const (
	TaskDeadlineReminder = "deadline:reminder"
)
