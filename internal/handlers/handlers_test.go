package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/health"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHandler(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *config.MonitoringConfig)
		wantEndpoints map[string]string
		wantDebug     string
	}{
		{
			name:          "defaults",
			wantEndpoints: map[string]string{"health": "/health", "ready": "/ready", "metrics": "/metrics"},
		},
		{
			name: "debug server and disabled metrics",
			mutate: func(c *config.MonitoringConfig) {
				c.Metrics.Enabled = false
				c.DebugServer.Enabled = true
			},
			wantEndpoints: map[string]string{"health": "/health", "ready": "/ready"},
			wantDebug:     ":3001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultMonitoring()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			app := common.NewApp("test")
			SetupRoutes(app, cfg, health.NewStore())

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var body struct {
				Message     string            `json:"message"`
				Endpoints   map[string]string `json:"endpoints"`
				DebugServer string            `json:"debugServer"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "go-monitoring server", body.Message)
			assert.Equal(t, tt.wantEndpoints, body.Endpoints)
			assert.Equal(t, tt.wantDebug, body.DebugServer)
		})
	}
}

func TestSetupRoutes_RegistersHealthControl(t *testing.T) {
	store := health.NewStore()
	app := common.NewApp("test")
	SetupRoutes(app, config.DefaultMonitoring(), store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health-control?error=true&key=db&reason=down", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, store.IsHealthy())
}
