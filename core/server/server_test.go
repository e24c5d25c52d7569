package server_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/server"
)

func waitListening(t *testing.T, s *server.Server) string {
	t.Helper()

	var addr string
	require.Eventually(t, func() bool {
		addr = s.Addr()
		return !strings.HasSuffix(addr, ":0")
	}, 2*time.Second, 10*time.Millisecond)
	return addr
}

func TestServerStartStop(t *testing.T) {
	t.Parallel()

	s := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, h) }()

	addr := waitListening(t, s)
	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	assert.ErrorIs(t, s.Start(ctx, h), server.ErrServerAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, "127.0.0.1:0", s.Addr())
}

func TestServerStopWhenIdle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, server.New(":0").Stop())
}

func TestServerListenError(t *testing.T) {
	t.Parallel()

	err := server.New("invalid-address").Start(context.Background(), http.NotFoundHandler())
	assert.Error(t, err)
}

func TestRunFunction(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	run := server.Run(ctx, "127.0.0.1:0", http.NotFoundHandler())
	cancel()
	assert.NoError(t, run())
}
