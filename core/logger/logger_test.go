package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewProductionJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithProduction("relay"), logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("started", logger.Component("server"))
	entry := decode(t, &buf)
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "relay", entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "server", entry["component"])
}

func TestNewDevelopmentText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("relay"), logger.WithOutput(&buf))

	log.Debug("visible")
	out := buf.String()
	assert.Contains(t, out, "msg=visible")
	assert.Contains(t, out, "env=development")
}

func TestWithLevelString(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithLevelString("warn"), logger.WithOutput(&buf))
	log.Info("dropped")
	assert.Zero(t, buf.Len())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")

	buf.Reset()
	log = logger.New(logger.WithLevelString("nonsense"), logger.WithOutput(&buf))
	log.Info("default level")
	assert.Contains(t, buf.String(), "default level")
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	for env, expected := range map[string]string{
		"production": "production",
		"prod":       "production",
		"staging":    "staging",
		"":           "development",
		"local":      "development",
	} {
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment("relay", env), logger.WithOutput(&buf), logger.WithJSONFormatter())
		log.Warn("x")
		assert.Equal(t, expected, decode(t, &buf)["env"], env)
	}
}

type requestIDKey struct{}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			id, ok := ctx.Value(requestIDKey{}).(string)
			return logger.RequestID(id), ok
		}),
	).With(logger.Component("test"))

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-1")
	log.InfoContext(ctx, "with id")
	entry := decode(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "test", entry["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	_, ok := decode(t, &buf)["request_id"]
	assert.False(t, ok)
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)

	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	errs := logger.Errors(errors.New("a"), nil, errors.New("c"))
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	group := errs.Value.Group()
	require.Len(t, group, 2)
	assert.Equal(t, "0", group[0].Key)
	assert.Equal(t, "2", group[1].Key)

	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, slog.Attr{}, logger.Query(""))
	assert.Equal(t, slog.Attr{}, logger.URL(""))
	assert.Equal(t, slog.Attr{}, logger.Key("k", nil))

	assert.Equal(t, time.Second, logger.Latency(time.Second).Value.Duration())
	assert.True(t, logger.CookiePresent(true).Value.Bool())
	assert.False(t, logger.CacheHit(false).Value.Bool())
	assert.Equal(t, "status_code", logger.StatusCode(200).Key)
	assert.True(t, strings.Contains(logger.Stack().Value.String(), "goroutine"))

	g := logger.Group("req", logger.Method("GET"), logger.Path("/"))
	assert.Equal(t, "req", g.Key)
	assert.Len(t, g.Value.Group(), 2)
}
