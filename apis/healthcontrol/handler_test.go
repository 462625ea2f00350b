package healthcontrol

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fiber.App, *health.Store) {
	t.Helper()
	store := health.NewStore()
	app := common.NewApp("test")
	RegisterRoutes(app, store)
	return app, store
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestControl(t *testing.T) {
	app, store := setup(t)

	status, _ := do(t, app, "GET", "/api/health-control?error=true&key=db&reason=down&code=DB_DOWN", "")
	assert.Equal(t, 200, status)
	state := store.Snapshot()
	require.Contains(t, state.Errors, "db")
	assert.Equal(t, "down", state.Errors["db"].Message)
	assert.Equal(t, "DB_DOWN", state.Errors["db"].Code)

	do(t, app, "GET", "/api/health-control?error=true&reason=oops", "")
	assert.Contains(t, store.Snapshot().Errors, DefaultKey)

	do(t, app, "GET", "/api/health-control?error=false&key=db", "")
	assert.NotContains(t, store.Snapshot().Errors, "db")
	assert.False(t, store.IsHealthy())

	do(t, app, "GET", "/api/health-control?error=false", "")
	assert.True(t, store.IsHealthy())

	status, body := do(t, app, "GET", "/api/health-control", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, `"isHealthy":true`)
	assert.Contains(t, body, `"usage"`)
}

func TestAction(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantHealthy bool
	}{
		{name: "set error", body: `{"action":"setError","key":"db","message":"down"}`, wantStatus: 200},
		{name: "set error without message", body: `{"action":"setError","key":"db"}`, wantStatus: 400, wantHealthy: true},
		{name: "clear without key", body: `{"action":"clearError"}`, wantStatus: 400, wantHealthy: true},
		{name: "get state", body: `{"action":"getState"}`, wantStatus: 200, wantHealthy: true},
		{name: "unknown action", body: `{"action":"explode"}`, wantStatus: 400, wantHealthy: true},
		{name: "malformed body", body: `{`, wantStatus: 400, wantHealthy: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := setup(t)
			status, _ := do(t, app, "POST", "/api/test-health", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantHealthy, store.IsHealthy())
		})
	}
}

func TestAction_ClearError(t *testing.T) {
	app, store := setup(t)
	store.SetError("db", "down", "")

	status, body := do(t, app, "POST", "/api/test-health", `{"action":"clearError","key":"db"}`)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"success":true,"action":"error cleared","key":"db"}`, body)
	assert.True(t, store.IsHealthy())
}

func TestControl_StoredErrorSurvivesLaterRequests(t *testing.T) {
	app, store := setup(t)

	do(t, app, "GET", "/api/health-control?error=true&key=dbdb&reason=down&code=AAAA", "")
	for i := 0; i < 50; i++ {
		do(t, app, "GET", "/api/health-control?error=xxxx&key=ZZZZ&reason=XXXX&code=QQQQ", "")
	}

	state := store.Snapshot()
	require.Len(t, state.Errors, 1)
	require.Contains(t, state.Errors, "dbdb")
	assert.Equal(t, "down", state.Errors["dbdb"].Message)
	assert.Equal(t, "AAAA", state.Errors["dbdb"].Code)

	do(t, app, "GET", "/api/health-control?error=false&key=dbdb", "")
	assert.True(t, store.IsHealthy())
}
