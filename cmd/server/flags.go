package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/version"
)

// Help and version text
const (
	AppName        = "go-monitoring"
	AppDescription = "A Fiber server with metrics, health and readiness endpoints"
)

// ServerFlags holds all command-line flags of the server.
// Empty values mean "not set" so that environment variables and the YAML
// file still apply.
type ServerFlags struct {
	// ConfigPath is the YAML configuration file
	ConfigPath string
	// Port is the HTTP server port number
	Port string
	// Environment is the deployment environment (development/production)
	Environment string
	// LogLevel is the logging verbosity (debug/info/warn/error)
	LogLevel string
	// DebugPort overrides monitoring.debug_server.port when positive
	DebugPort int

	// Help shows help information and exits
	Help bool
	// Version shows version information and exits
	Version bool
}

// parseFlags parses args into a ServerFlags.
func parseFlags(args []string) (*ServerFlags, error) {
	f := &ServerFlags{}
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)

	fs.StringVar(&f.ConfigPath, "config", "",
		fmt.Sprintf("Path to the YAML configuration file (default: $CONFIG_PATH or %s)", config.DefaultConfigPath))
	fs.StringVar(&f.Port, "port", "",
		fmt.Sprintf("Server port number (default: %s)", config.DefaultPort))
	fs.StringVar(&f.Environment, "env", "",
		fmt.Sprintf("Deployment environment: %s, %s (default: %s)",
			config.ValidEnvironmentDevelopment, config.ValidEnvironmentProduction, config.DefaultEnvironment))
	fs.StringVar(&f.LogLevel, "log-level", "",
		fmt.Sprintf("Log level: %s, %s, %s, %s (default: %s)",
			config.ValidLogLevelDebug, config.ValidLogLevelInfo, config.ValidLogLevelWarn, config.ValidLogLevelError, config.DefaultLogLevel))
	fs.IntVar(&f.DebugPort, "debug-port", 0,
		fmt.Sprintf("Debug server port (default: %d)", config.DefaultDebugServerPort))

	fs.BoolVar(&f.Help, "help", false, "Show help information and exit")
	fs.BoolVar(&f.Help, "h", false, "Show help information and exit (short form)")
	fs.BoolVar(&f.Version, "version", false, "Show version information and exit")
	fs.BoolVar(&f.Version, "v", false, "Show version information and exit (short form)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// showHelp prints usage information.
func (f *ServerFlags) showHelp() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  go-monitoring [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("    -config string      YAML configuration file (default: configs/config.yaml)")
	fmt.Println("    -port string        Server port (default: 3000)")
	fmt.Println("    -env string         Environment: development, production (default: development)")
	fmt.Println("    -log-level string   Log level: debug, info, warn, error (default: info)")
	fmt.Println("    -debug-port int     Debug server port (default: 3001)")
	fmt.Println("    -help, -h           Show this help information")
	fmt.Println("    -version, -v        Show version information")
	fmt.Println()
	fmt.Println("  Monitoring endpoints are configured under 'monitoring:' in the YAML file.")
	fmt.Println("  With debug_server.enabled the endpoints move to the debug port.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start with default settings")
	fmt.Println("  go-monitoring")
	fmt.Println()
	fmt.Println("  # Serve health, ready and metrics on a side port")
	fmt.Println("  DEBUG_SERVER_ENABLED=true go-monitoring -debug-port 9090")
}

// showVersion prints version information.
func (f *ServerFlags) showVersion() {
	fmt.Printf("%s %s\n", AppName, version.GetVersion())
	fmt.Printf("Build info: %s\n", version.GetBuildInfo())
	fmt.Printf("Go version: %s\n", runtime.Version())
}

// Interface methods for config package
// These methods implement the config.Flags interface.

// GetPort returns the configured server port number.
func (f *ServerFlags) GetPort() string {
	return f.Port
}

// GetEnvironment returns the configured deployment environment.
func (f *ServerFlags) GetEnvironment() string {
	return f.Environment
}

// GetLogLevel returns the configured logging verbosity level.
func (f *ServerFlags) GetLogLevel() string {
	return f.LogLevel
}

// GetDebugServerPort returns the configured debug server port.
func (f *ServerFlags) GetDebugServerPort() int {
	return f.DebugPort
}
