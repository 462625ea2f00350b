package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks configuration correctness. It never mutates cfg.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("%w: port %q must be a number between 0 and 65535", ErrInvalidConfig, c.Port)
	}

	switch c.Environment {
	case ValidEnvironmentDevelopment, ValidEnvironmentProduction:
	default:
		return fmt.Errorf("%w: environment %q (must be one of: %s, %s)",
			ErrInvalidConfig, c.Environment, ValidEnvironmentDevelopment, ValidEnvironmentProduction)
	}

	switch c.LogLevel {
	case ValidLogLevelDebug, ValidLogLevelInfo, ValidLogLevelWarn, ValidLogLevelError:
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.Monitoring.DebugServer.Enabled && c.Monitoring.DebugServer.Port != 0 && c.Monitoring.DebugServer.Port == port {
		return fmt.Errorf("%w: debug_server port %d collides with the server port", ErrInvalidConfig, port)
	}

	return c.Monitoring.Validate()
}

// Validate checks the monitoring module options.
func (m MonitoringConfig) Validate() error {
	seen := make(map[string]string, 3)
	routes := []struct {
		name  string
		route RouteConfig
	}{
		{"metrics", m.Metrics},
		{"health_check", m.HealthCheck},
		{"ready_check", m.ReadyCheck.RouteConfig},
	}
	for _, r := range routes {
		if !r.route.Enabled {
			continue
		}
		if !strings.HasPrefix(r.route.Path, "/") {
			return fmt.Errorf("%w: %s path %q must start with '/'", ErrInvalidConfig, r.name, r.route.Path)
		}
		if other, dup := seen[r.route.Path]; dup {
			return fmt.Errorf("%w: %s and %s share path %q", ErrInvalidConfig, other, r.name, r.route.Path)
		}
		seen[r.route.Path] = r.name
	}

	if m.DebugServer.Enabled && (m.DebugServer.Port < 0 || m.DebugServer.Port > 65535) {
		return fmt.Errorf("%w: debug_server port %d out of range", ErrInvalidConfig, m.DebugServer.Port)
	}

	return nil
}

// Addr returns the listen address of the debug server.
func (d DebugServerConfig) Addr() string {
	return ":" + strconv.Itoa(d.Port)
}
