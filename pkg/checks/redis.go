package checks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var setRedisLogger sync.Once

// RedisCheck pings a redis server. It owns its client and must be closed.
type RedisCheck struct {
	client  *redis.Client
	address string
}

// NewRedisCheck creates a redis probe. No connection is made until the first ping.
func NewRedisCheck(address, password string, db int, timeout time.Duration) *RedisCheck {
	setRedisLogger.Do(func() {
		redis.SetLogger(logger.NewRedisAdapter())
	})

	client := redis.NewClient(&redis.Options{
		Addr:         address,
		Password:     password,
		DB:           db,
		PoolSize:     2,
		MaxRetries:   -1,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		// CLIENT SETINFO adds a round trip to every fresh probe connection.
		DisableIdentity: true,
	})

	return &RedisCheck{client: client, address: address}
}

// Check implements readiness.CheckFunc.
func (r *RedisCheck) Check(ctx context.Context) (bool, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return false, fmt.Errorf("redis ping %s: %w", r.address, err)
	}
	return true, nil
}

// Close releases the client connections.
func (r *RedisCheck) Close() error {
	return r.client.Close()
}
