package config

// Config represents the main application configuration structure.
// It contains the host server settings and the monitoring module options.
type Config struct {
	// HTTP server port (e.g., "3000")
	Port string

	// Application environment (e.g., "development", "production")
	Environment string

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string

	// Monitoring module options
	Monitoring MonitoringConfig
}

// RouteConfig describes one telemetry route that can be toggled and moved.
type RouteConfig struct {
	// Whether the route is served
	Enabled bool

	// Route path (e.g., "/metrics")
	Path string
}

// MetricsConfig controls the /metrics route and request instrumentation.
type MetricsConfig = RouteConfig

// HealthCheckConfig controls the /health route.
type HealthCheckConfig = RouteConfig

// ReadyCheckConfig controls the /ready route and the readiness checks file.
type ReadyCheckConfig struct {
	RouteConfig

	// Optional YAML file listing readiness checks registered at startup
	ChecksFile string
}

// DebugServerConfig drives whether the secondary debug listener exists.
type DebugServerConfig struct {
	// Whether the debug server is started
	Enabled bool

	// TCP port the debug server binds to
	Port int
}

// PrometheusConfig tunes the default process/runtime collectors.
type PrometheusConfig struct {
	// Register Go runtime and process collectors
	DefaultMetrics bool

	// Prefix applied to the default collectors' metric names
	Prefix string

	// Constant labels attached to the default collectors
	Labels map[string]string
}

// MonitoringConfig groups every option of the monitoring module.
type MonitoringConfig struct {
	Metrics     MetricsConfig
	HealthCheck HealthCheckConfig
	ReadyCheck  ReadyCheckConfig
	DebugServer DebugServerConfig
	Prometheus  PrometheusConfig
}

// ServerConfig represents server-related configuration settings from YAML.
type ServerConfig struct {
	// HTTP server port (e.g., "3000")
	Port string `yaml:"port"`

	// Application environment (e.g., "development", "production")
	Environment string `yaml:"environment"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `yaml:"log_level"`
}

// RouteYAMLConfig mirrors RouteConfig. Pointer fields tell an unset key
// apart from an explicit zero so partial YAML merges with the defaults.
type RouteYAMLConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ReadyCheckYAMLConfig mirrors ReadyCheckConfig.
type ReadyCheckYAMLConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	Path       string `yaml:"path"`
	ChecksFile string `yaml:"checks_file"`
}

// DebugServerYAMLConfig mirrors DebugServerConfig.
type DebugServerYAMLConfig struct {
	Enabled *bool `yaml:"enabled"`
	Port    int   `yaml:"port"`
}

// PrometheusYAMLConfig mirrors PrometheusConfig.
type PrometheusYAMLConfig struct {
	DefaultMetrics *bool             `yaml:"default_metrics"`
	Prefix         string            `yaml:"prefix"`
	Labels         map[string]string `yaml:"labels"`
}

// MonitoringYAMLConfig is the `monitoring:` block of the YAML file.
type MonitoringYAMLConfig struct {
	Metrics     RouteYAMLConfig       `yaml:"metrics"`
	HealthCheck RouteYAMLConfig       `yaml:"health_check"`
	ReadyCheck  ReadyCheckYAMLConfig  `yaml:"ready_check"`
	DebugServer DebugServerYAMLConfig `yaml:"debug_server"`
	Prometheus  PrometheusYAMLConfig  `yaml:"prometheus"`
}

// YAMLConfig represents the structure of the YAML configuration file.
type YAMLConfig struct {
	// Server configuration settings
	Server ServerConfig `yaml:"server"`

	// Monitoring module configuration
	Monitoring MonitoringYAMLConfig `yaml:"monitoring"`
}
