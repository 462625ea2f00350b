package logger

import (
	"github.com/NZ-WEB/go-monitoring/internal/config"
)

// FromConfig derives the logger configuration from the application config.
// Production uses JSON output, every other environment the colored console.
func FromConfig(cfg *config.Config) *Config {
	loggerConfig := DefaultConfig()

	if cfg.LogLevel != "" {
		loggerConfig.Level = LogLevel(cfg.LogLevel)
	}

	if cfg.Environment == config.ValidEnvironmentProduction {
		loggerConfig.Format = "json"
	} else {
		loggerConfig.Format = "console"
	}

	return loggerConfig
}

func InitFromConfig(cfg *config.Config) error {
	return Init(FromConfig(cfg))
}
