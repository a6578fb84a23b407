package review

import "context"

// Logger provides structured logging for the review pipeline.
type Logger interface {
	// LogWarning logs a warning with structured fields, typically error
	// details and identifiers.
	LogWarning(ctx context.Context, message string, fields map[string]interface{})

	// LogInfo logs an informational message with structured fields.
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
}
