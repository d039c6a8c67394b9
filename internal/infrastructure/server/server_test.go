package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/config"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Backend = "memory"
	cfg.RateLimit.Enabled = false
	cfg.Shell.Hostname = "testbox"
	return cfg
}

func TestNewServerRoutes(t *testing.T) {
	s, err := NewServer(testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/fs/ls?path=/", http.StatusOK},
		{http.MethodGet, "/settings/volume", http.StatusOK},
		{http.MethodGet, "/sessions/missing/stream", http.StatusNotFound},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Router().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, err := NewServer(testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	sess, err := s.Sessions.Create("user")
	require.NoError(t, err)
	s.Shell.Execute(sess, "ls")

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "aurora_shell_commands_total"), "missing command counter")
	assert.Contains(t, body, "aurora_shell_sessions_active 1")
}

func TestCoreLaunchesApps(t *testing.T) {
	core, err := NewCore(testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close() })

	sess, err := core.Sessions.Create("user")
	require.NoError(t, err)

	res := core.Shell.Execute(sess, "notes")
	assert.False(t, res.IsError)
	require.Len(t, core.Apps.List(nil), 1)
	assert.Equal(t, "notes", core.Apps.List(nil)[0].AppID)
	assert.Equal(t, "user@testbox:~$ ", core.Shell.Prompt(sess))
}

func TestCoreRejectsBadStorage(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Backend = "redis"
	_, err := NewCore(cfg, nil)
	require.Error(t, err)
}
