package monitoring

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newModule(t *testing.T, mutate func(*config.MonitoringConfig)) (*Module, *fiber.App) {
	t.Helper()
	cfg := config.DefaultMonitoring()
	cfg.Prometheus.DefaultMetrics = false
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, m.Close(ctx))
	})

	app := common.NewApp("test")
	m.Install(app)
	app.Get("/api/x", func(c *fiber.Ctx) error { return c.SendString("x") })
	return m, app
}

func call(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestModule_RoutesOnMainApp(t *testing.T) {
	m, app := newModule(t, nil)

	status, body := call(t, app, "/health")
	assert.Equal(t, 200, status)
	assert.Equal(t, `{"status":"ok"}`, body)

	m.Health().SetError("db", "down", "")
	status, body = call(t, app, "/health")
	assert.Equal(t, 503, status)
	assert.Contains(t, body, `"message":"down"`)

	status, body = call(t, app, "/ready")
	assert.Equal(t, 200, status)
	assert.Equal(t, `{"status":"ready"}`, body)

	assert.Nil(t, m.DebugServer())
}

func TestModule_MiddlewareSkipsMonitoringRoutes(t *testing.T) {
	_, app := newModule(t, nil)

	call(t, app, "/api/x")
	call(t, app, "/health")
	call(t, app, "/ready")
	status, body := call(t, app, "/metrics")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, `http_request_total{method="GET",route="/api/x",status_code="200"} 1`)
	assert.NotContains(t, body, `route="/health"`)
	assert.NotContains(t, body, `route="/ready"`)
	assert.NotContains(t, body, `route="/metrics"`)
	assert.Contains(t, body, "app_build_info")
}

func TestModule_DisabledRoutes(t *testing.T) {
	_, app := newModule(t, func(c *config.MonitoringConfig) {
		c.Metrics.Enabled = false
		c.HealthCheck.Enabled = false
	})

	status, _ := call(t, app, "/metrics")
	assert.Equal(t, 404, status)
	status, _ = call(t, app, "/health")
	assert.Equal(t, 404, status)
	status, _ = call(t, app, "/ready")
	assert.Equal(t, 200, status)
}

func TestModule_DebugServerReplacesMainRoutes(t *testing.T) {
	m, app := newModule(t, func(c *config.MonitoringConfig) {
		c.DebugServer = config.DebugServerConfig{Enabled: true, Port: 0}
	})

	status, _ := call(t, app, "/health")
	assert.Equal(t, 404, status, "routes are served only by the debug server")

	require.NotNil(t, m.DebugServer())
	addr, err := m.DebugServer().Addr()
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	resp, err := http.Get("http://127.0.0.1:" + port + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `{"status":"ok"}`, string(body))

	call(t, app, "/api/x")
	resp, err = http.Get("http://127.0.0.1:" + port + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/api/x"`, "main app traffic is still measured")
}

func TestModule_DebugServerBindFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	m, app := newModule(t, func(c *config.MonitoringConfig) {
		c.DebugServer = config.DebugServerConfig{Enabled: true, Port: taken.Addr().(*net.TCPAddr).Port}
	})

	assert.Nil(t, m.DebugServer())
	status, _ := call(t, app, "/api/x")
	assert.Equal(t, 200, status, "host keeps serving")
	assert.NotEmpty(t, logs.FilterMessage("debug server failed to bind").All())
}

func TestModule_LoadsChecksFile(t *testing.T) {
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := dead.Addr().String()
	require.NoError(t, dead.Close())

	path := filepath.Join(t.TempDir(), "readiness.yaml")
	doc := "checks:\n  - name: database\n    type: tcp\n    address: " + addr + "\n    timeout: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	m, app := newModule(t, func(c *config.MonitoringConfig) {
		c.ReadyCheck.ChecksFile = path
	})

	assert.Equal(t, 1, m.Readiness().Len())
	status, body := call(t, app, "/ready")
	assert.Equal(t, 503, status)
	assert.True(t, strings.Contains(body, `"name":"database","passed":false`), body)
}

func TestModule_BadChecksFileIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readiness.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks:\n  - name: queue\n    type: amqp\n"), 0o600))

	m, app := newModule(t, func(c *config.MonitoringConfig) {
		c.ReadyCheck.ChecksFile = path
	})

	assert.Equal(t, 0, m.Readiness().Len())
	status, _ := call(t, app, "/ready")
	assert.Equal(t, 200, status)
}

func TestModule_ChecksFileIgnoredWhenReadinessDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readiness.yaml")
	doc := "checks:\n  - name: database\n    type: tcp\n    address: 127.0.0.1:1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	m, app := newModule(t, func(c *config.MonitoringConfig) {
		c.ReadyCheck.Enabled = false
		c.ReadyCheck.ChecksFile = path
	})

	assert.Equal(t, 0, m.Readiness().Len())
	status, _ := call(t, app, "/ready")
	assert.Equal(t, 404, status)
}
