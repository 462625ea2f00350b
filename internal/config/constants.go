package config

// Default configuration values
const (
	// DefaultConfigPath is where the YAML configuration is read from
	DefaultConfigPath = "configs/config.yaml"

	// DefaultPort is the default HTTP server port
	DefaultPort = "3000"

	// DefaultEnvironment is the default deployment environment
	DefaultEnvironment = "development"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
)

// Default monitoring routes and debug listener settings
const (
	DefaultMetricsPath     = "/metrics"
	DefaultHealthCheckPath = "/health"
	DefaultReadyCheckPath  = "/ready"

	// DefaultDebugServerPort is the port of the secondary debug listener
	DefaultDebugServerPort = 3001
)

// Valid environment values
const (
	ValidEnvironmentDevelopment = "development"
	ValidEnvironmentProduction  = "production"
)

// Valid log level values
const (
	ValidLogLevelDebug = "debug"
	ValidLogLevelInfo  = "info"
	ValidLogLevelWarn  = "warn"
	ValidLogLevelError = "error"
)
