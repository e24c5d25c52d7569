package logger

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Helpers return an empty slog.Attr for empty input; slog skips those.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Errors
// ============================================================================

// Error creates an "error" attribute. Returns empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups non-nil errors under "errors", keyed by argument index.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates a "duration" attribute.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Latency creates a "latency" attribute.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// Elapsed creates an "elapsed" attribute measured from start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// HTTP
// ============================================================================

// RequestID creates a "request_id" attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func Query(query string) slog.Attr {
	if query == "" {
		return slog.Attr{}
	}
	return slog.String("query", query)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func RemoteAddr(addr string) slog.Attr {
	return slog.String("remote_addr", addr)
}

func UserAgent(ua string) slog.Attr {
	if ua == "" {
		return slog.Attr{}
	}
	return slog.String("user_agent", ua)
}

// BytesOut creates a "bytes_out" attribute.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// URL creates a "url" attribute. Callers must strip credentials first.
func URL(u string) slog.Attr {
	if u == "" {
		return slog.Attr{}
	}
	return slog.String("url", u)
}

// ============================================================================
// Forwarding
// ============================================================================

// CookiePresent records whether a cookie header was forwarded.
// The cookie value itself must never be logged.
func CookiePresent(present bool) slog.Attr {
	return slog.Bool("cookie_present", present)
}

// CacheHit records whether a response came from cache.
func CacheHit(hit bool) slog.Attr {
	return slog.Bool("cache_hit", hit)
}

// ============================================================================
// Metadata
// ============================================================================

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result records an operation outcome (success, failure, pending).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Key creates an attribute with a custom key. Returns empty Attr for nil.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Debugging
// ============================================================================

// Stack captures the current goroutine's stack trace.
func Stack() slog.Attr {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]
	return slog.String("stack", string(buf))
}
