package logger

import (
	"github.com/teranos/wabbit/sym"
)

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(sym.VW + " Learner started", "pid", pid)
//
//	// Use:
//	logger.VWInfow("Learner started", "pid", pid)
//
// This makes logs queryable by symbol and keeps messages clean.

// VWInfow logs an info message with the VW symbol (⌁)
func VWInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.VW}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// VWDebugw logs a debug message with the VW symbol (⌁)
func VWDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.VW}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// VWErrorw logs an error message with the VW symbol (⌁)
func VWErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.VW}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// SessionInfow logs an info message with the Session symbol (⇄)
func SessionInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Session}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// SessionDebugw logs a debug message with the Session symbol (⇄)
func SessionDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Session}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// DBInfow logs an info message with the DB symbol (⊔)
func DBInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.DB}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
