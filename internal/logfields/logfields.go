package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyTool       = "tool"
	KeyStep       = "step"
	KeyOutcome    = "outcome"
	KeyPath       = "path"
	KeyManifest   = "manifest"
	KeyFormat     = "format"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Step(i int) slog.Attr            { return slog.Int(KeyStep, i) }
func Outcome(kind string) slog.Attr   { return slog.String(KeyOutcome, kind) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Manifest(p string) slog.Attr     { return slog.String(KeyManifest, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
