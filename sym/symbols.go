// Package sym defines canonical symbols for wabbit operations and system markers.
// These symbols are stable across CLI output, logs, and documentation.
package sym

// Glyph string constants, the visual expression of each symbol.
const (
	VW      = "⌁" // the external learner process
	Wire    = "⊳" // example-line codec
	Session = "⇄" // request/response exchange
	DB      = "⊔" // database/storage layer
	Teach   = "≫" // training feed
	Predict = "∼" // unlabeled prediction
	Model   = "⟳" // model snapshot
)

// Names maps each glyph to its short name, for log filtering and docs.
var Names = map[string]string{
	VW:      "vw",
	Wire:    "wire",
	Session: "session",
	DB:      "db",
	Teach:   "teach",
	Predict: "predict",
	Model:   "model",
}

// Name returns the short name for a glyph, or the glyph itself if unknown.
func Name(glyph string) string {
	if n, ok := Names[glyph]; ok {
		return n
	}
	return glyph
}
