package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyLine       = "line"
	KeyTarget     = "target"
	KeyResolved   = "resolved"
	KeyStatus     = "status"
	KeyConfidence = "confidence"
	KeyStrategy   = "strategy"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Line(n int) slog.Attr { return slog.Int(KeyLine, n) }
func Target(t string) slog.Attr { return slog.String(KeyTarget, t) }
func Resolved(p string) slog.Attr { return slog.String(KeyResolved, p) }
func Status(s string) slog.Attr { return slog.String(KeyStatus, s) }
func Confidence(c string) slog.Attr { return slog.String(KeyConfidence, c) }
func Strategy(name string) slog.Attr { return slog.String(KeyStrategy, name) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
