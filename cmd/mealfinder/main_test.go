package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mealfinder/pkg/config"
	"github.com/umputun/mealfinder/pkg/session"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: tmpFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_BadSessionBackend(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "redis-config.yml")
	cfg := "database:\n  dsn: \":memory:\"\nsession:\n  backend: redis\n  redis_url: \"not a url\"\n"
	require.NoError(t, os.WriteFile(tmpFile, []byte(cfg), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: tmpFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to initialize session store")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())
	t.Setenv("MEALFINDER_API_KEY", "test-key")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: wd + "/testdata/test_config.yml"}

	serverErr := make(chan error, 1)
	go func() { serverErr <- run(ctx, opts) }()

	// wait for server to start
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://127.0.0.1:18766/ping")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	// goal catalog served by the wired server
	resp, err = http.Get("http://127.0.0.1:18766/api/v1/goals")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// shutdown
	cancel()
	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Error("server shutdown timeout")
	}
}

func TestMakeSessionStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, runFn, err := makeSessionStore(context.Background(),
			config.SessionConfig{Backend: config.SessionBackendMemory, TTL: time.Hour, SweepInterval: time.Minute})
		require.NoError(t, err)
		assert.IsType(t, &session.MemoryStore{}, store)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NoError(t, runFn(ctx))
	})

	t.Run("redis with bad url", func(t *testing.T) {
		_, _, err := makeSessionStore(context.Background(),
			config.SessionConfig{Backend: config.SessionBackendRedis, RedisURL: "http://nope", TTL: time.Hour})
		require.Error(t, err)
	})
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})
}
