// Package logfields defines canonical log field name constants so attribute
// keys do not drift across packages.
package logfields

import "log/slog"

const (
	KeyKind       = "kind"
	KeyEntityID   = "entity_id"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyRemoteAddr = "remote_addr"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Helpers return slog.Attr values; keeping each granular lets callers compose.
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func EntityID(id string) slog.Attr     { return slog.String(KeyEntityID, id) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
