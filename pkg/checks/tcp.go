package checks

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/NZ-WEB/go-monitoring/internal/readiness"
)

// TCP returns a check that passes when address accepts a connection within timeout.
func TCP(address string, timeout time.Duration) readiness.CheckFunc {
	return func(ctx context.Context) (bool, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", address)
		if err != nil {
			return false, fmt.Errorf("dial %s: %w", address, err)
		}
		_ = conn.Close()
		return true, nil
	}
}
