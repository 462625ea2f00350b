package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/NZ-WEB/go-monitoring/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		want  zapcore.Level
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "warn", level: "warn", want: zapcore.WarnLevel},
		{name: "warning alias", level: "WARNING", want: zapcore.WarnLevel},
		{name: "error", level: "error", want: zapcore.ErrorLevel},
		{name: "unknown falls back to info", level: "verbose", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}

func TestFromConfig(t *testing.T) {
	prod := FromConfig(&config.Config{Environment: config.ValidEnvironmentProduction, LogLevel: "warn"})
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, LogLevelWarn, prod.Level)

	dev := FromConfig(&config.Config{Environment: config.ValidEnvironmentDevelopment})
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, LogLevelInfo, dev.Level)
}

func TestHelpersAreNoopBeforeInit(t *testing.T) {
	Set(nil)
	t.Cleanup(func() { Set(nil) })

	assert.NotPanics(t, func() {
		Infof("hello %s", "world")
		Error("boom", zap.String("k", "v"))
		NewRedisAdapter().Printf(context.Background(), "dial %s", "tcp")
	})
	assert.NotNil(t, L())
	assert.NoError(t, Sync())
}

func TestSetRoutesHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Warnf("debug server %s", "down")
	Info("started", zap.Int("port", 3001))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "debug server down", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(3001), entries[1].ContextMap()["port"])
}

func TestInitWithJSONFormat(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	err := Init(&Config{Level: LogLevelDebug, Format: "json", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, Logger)
	assert.NotNil(t, Sugar)
}
