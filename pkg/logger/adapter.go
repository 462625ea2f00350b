package logger

import (
	"context"

	"go.uber.org/zap"
)

// RedisAdapter routes go-redis internal log lines into the global logger.
// It satisfies the Printf-style interface accepted by redis.SetLogger.
type RedisAdapter struct{}

func NewRedisAdapter() *RedisAdapter {
	return &RedisAdapter{}
}

func (a *RedisAdapter) Printf(_ context.Context, format string, v ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Named("redis").Debugf(format, v...)
	}
}
