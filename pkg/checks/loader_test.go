package checks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NZ-WEB/go-monitoring/internal/readiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	set, err := Parse([]byte(`
checks:
  - name: database
    type: tcp
    address: localhost:5432
    timeout: 2s
  - name: cache
    type: REDIS
    address: localhost:6379
  - name: upstream
    type: http
    url: http://localhost:8080/ping
`))
	require.NoError(t, err)
	t.Cleanup(func() { _ = set.Close() })

	require.Len(t, set.Checks, 3)
	assert.Equal(t, "database", set.Checks[0].Name)
	assert.Equal(t, "cache", set.Checks[1].Name)
	assert.Equal(t, "upstream", set.Checks[2].Name)
	assert.Len(t, set.closers, 1, "only the redis check holds a client")

	registry := readiness.NewRegistry()
	set.Register(registry)
	assert.Equal(t, 3, registry.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "unknown type",
			doc:     "checks:\n  - name: queue\n    type: amqp\n    address: localhost:5672\n",
			wantErr: ErrUnknownType,
		},
		{
			name:    "missing name",
			doc:     "checks:\n  - type: tcp\n    address: localhost:5432\n",
			wantErr: ErrMissingField,
		},
		{
			name:    "tcp without address",
			doc:     "checks:\n  - name: database\n    type: tcp\n",
			wantErr: ErrMissingField,
		},
		{
			name:    "http without url",
			doc:     "checks:\n  - name: upstream\n    type: http\n",
			wantErr: ErrMissingField,
		},
		{
			name:    "redis without address",
			doc:     "checks:\n  - name: cache\n    type: redis\n",
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse([]byte(tt.doc))
			assert.Nil(t, set)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("checks: ["))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	set, err := Parse([]byte("checks: []\n"))
	require.NoError(t, err)
	assert.Empty(t, set.Checks)
	assert.NoError(t, set.Close())
}

func TestSpec_Timeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, Spec{}.timeout())
	assert.Equal(t, 2*time.Second, Spec{Timeout: 2 * time.Second}.timeout())
}

func TestResolvePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolvePath("~/configs/readiness.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "configs", "readiness.yaml"), got)

	got, err = ResolvePath("/etc/readiness.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/readiness.yaml", got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readiness.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks:\n  - name: database\n    type: tcp\n    address: 127.0.0.1:1\n"), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	require.Len(t, set.Checks, 1)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_CheckRunsAgainstDeadPort(t *testing.T) {
	set, err := Parse([]byte("checks:\n  - name: database\n    type: tcp\n    address: " + deadAddr(t) + "\n    timeout: 1s\n"))
	require.NoError(t, err)

	registry := readiness.NewRegistry()
	set.Register(registry)
	report := registry.Evaluate(context.Background())

	assert.False(t, report.Ready)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "database", report.Results[0].Name)
	assert.Contains(t, report.Results[0].Reason, "dial ")
}
