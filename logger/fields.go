package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across wabbit.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldSessionID = "session_id"
	FieldSymbol    = "symbol" // wabbit component glyph (⌁, ⊳, ⇄, etc.)

	// The exchange itself
	FieldLine     = "line"     // rendered example line
	FieldResponse = "response" // raw response text
	FieldTag      = "tag"

	// Process
	FieldCommand = "command"
	FieldBinary  = "binary"
	FieldPID     = "pid"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldTimeout    = "timeout"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	session := vw.NewSession(ch, vw.SessionConfig{
//	    Logger: logger.ComponentLogger("vw.session"),
//	})
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
