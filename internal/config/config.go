package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// Cache for configuration to avoid repeated file reads
	configCache *Config
	configErr   error
	configOnce  sync.Once
)

// Load creates a new Config from the YAML file at path without flag overrides.
func Load(path string) (*Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadCached loads the configuration once per process and returns the cached
// result on every later call.
func LoadCached(path string) (*Config, error) {
	configOnce.Do(func() {
		configCache, configErr = LoadWithFlags(path, nil)
	})
	return configCache, configErr
}

// Flags defines the interface for command-line flag access.
type Flags interface {
	GetPort() string
	GetEnvironment() string
	GetLogLevel() string
	GetDebugServerPort() int
}

// LoadWithFlags creates a new Config by loading configuration from the YAML
// file at path and applying environment and command-line flag overrides.
//
// Configuration precedence (highest to lowest):
// 1. Command-line flags
// 2. Environment variables
// 3. YAML configuration file
// 4. Default values
//
// A missing file is not an error: every setting falls back to its default.
// A file that cannot be parsed is reported to the caller.
func LoadWithFlags(path string, flgs Flags) (*Config, error) {
	yamlConfig, err := loadFromYAML(path)
	if err != nil {
		return nil, err
	}

	port := getEnv("PORT", yamlConfig.Server.Port)
	if port == "" {
		port = DefaultPort
	}
	if flgs != nil && flgs.GetPort() != "" {
		port = flgs.GetPort()
	}

	environment := getEnv("ENVIRONMENT", yamlConfig.Server.Environment)
	if environment == "" {
		environment = DefaultEnvironment
	}
	if flgs != nil && flgs.GetEnvironment() != "" {
		environment = flgs.GetEnvironment()
	}

	logLevel := getEnv("LOG_LEVEL", yamlConfig.Server.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if flgs != nil && flgs.GetLogLevel() != "" {
		logLevel = flgs.GetLogLevel()
	}

	monitoring, err := buildMonitoring(yamlConfig.Monitoring)
	if err != nil {
		return nil, err
	}
	if flgs != nil && flgs.GetDebugServerPort() > 0 {
		monitoring.DebugServer.Port = flgs.GetDebugServerPort()
	}

	return &Config{
		Port:        port,
		Environment: environment,
		LogLevel:    logLevel,
		Monitoring:  monitoring,
	}, nil
}

// DefaultMonitoring returns the module options used when nothing is configured.
func DefaultMonitoring() MonitoringConfig {
	return MonitoringConfig{
		Metrics:     MetricsConfig{Enabled: true, Path: DefaultMetricsPath},
		HealthCheck: HealthCheckConfig{Enabled: true, Path: DefaultHealthCheckPath},
		ReadyCheck: ReadyCheckConfig{
			RouteConfig: RouteConfig{Enabled: true, Path: DefaultReadyCheckPath},
		},
		DebugServer: DebugServerConfig{Enabled: false, Port: DefaultDebugServerPort},
		Prometheus:  PrometheusConfig{DefaultMetrics: true},
	}
}

// buildMonitoring merges the partial YAML block over the defaults and
// applies environment overrides.
func buildMonitoring(y MonitoringYAMLConfig) (MonitoringConfig, error) {
	m := DefaultMonitoring()

	mergeRoute(&m.Metrics, y.Metrics)
	mergeRoute(&m.HealthCheck, y.HealthCheck)
	mergeRoute(&m.ReadyCheck.RouteConfig, RouteYAMLConfig{Enabled: y.ReadyCheck.Enabled, Path: y.ReadyCheck.Path})
	m.ReadyCheck.ChecksFile = getEnv("READY_CHECKS_FILE", y.ReadyCheck.ChecksFile)

	if y.DebugServer.Enabled != nil {
		m.DebugServer.Enabled = *y.DebugServer.Enabled
	}
	if y.DebugServer.Port != 0 {
		m.DebugServer.Port = y.DebugServer.Port
	}
	if v := os.Getenv("DEBUG_SERVER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return m, fmt.Errorf("invalid DEBUG_SERVER_ENABLED %q: %w", v, err)
		}
		m.DebugServer.Enabled = enabled
	}
	if v := os.Getenv("DEBUG_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return m, fmt.Errorf("invalid DEBUG_SERVER_PORT %q: %w", v, err)
		}
		m.DebugServer.Port = port
	}

	if y.Prometheus.DefaultMetrics != nil {
		m.Prometheus.DefaultMetrics = *y.Prometheus.DefaultMetrics
	}
	m.Prometheus.Prefix = y.Prometheus.Prefix
	if len(y.Prometheus.Labels) > 0 {
		m.Prometheus.Labels = make(map[string]string, len(y.Prometheus.Labels))
		for k, v := range y.Prometheus.Labels {
			m.Prometheus.Labels[k] = v
		}
	}

	return m, nil
}

func mergeRoute(dst *RouteConfig, src RouteYAMLConfig) {
	if src.Enabled != nil {
		dst.Enabled = *src.Enabled
	}
	if src.Path != "" {
		dst.Path = src.Path
	}
}

func loadFromYAML(path string) (*YAMLConfig, error) {
	config := &YAMLConfig{}
	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
