package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoot       = "root"
	KeyDocument   = "document"
	KeyTarget     = "target"
	KeyCollection = "collection"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Document(p string) slog.Attr     { return slog.String(KeyDocument, p) }
func Target(name string) slog.Attr    { return slog.String(KeyTarget, name) }
func Collection(n string) slog.Attr   { return slog.String(KeyCollection, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
