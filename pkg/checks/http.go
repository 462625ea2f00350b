package checks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NZ-WEB/go-monitoring/internal/readiness"
)

// HTTP returns a check that issues a GET to url and passes when the response
// status equals expect.
func HTTP(url string, expect int, timeout time.Duration) readiness.CheckFunc {
	client := &http.Client{Timeout: timeout}
	if expect == 0 {
		expect = http.StatusOK
	}

	return func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return false, fmt.Errorf("GET %s: %w", url, err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != expect {
			return false, fmt.Errorf("%w: GET %s returned %d, want %d", ErrUnexpectedStatus, url, resp.StatusCode, expect)
		}
		return true, nil
	}
}
