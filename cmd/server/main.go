package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/server"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/joho/godotenv"
)

// main is the entry point of the server. It exits with the code reported by
// run once every deferred cleanup in run has completed.
func main() {
	os.Exit(run(os.Args[1:]))
}

// run drives the server and returns the process exit code. It:
//  1. Parses command-line flags
//  2. Loads environment variables from .env if present
//  3. Loads configuration from YAML with env and flag overrides
//  4. Builds the server and its monitoring module
//  5. Serves until SIGINT or SIGTERM, then shuts down gracefully
func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		return 2
	}
	if flags.Help {
		flags.showHelp()
		return 0
	}
	if flags.Version {
		flags.showVersion()
		return 0
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadWithFlags(configPath, flags)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 1
	}

	if err := logger.InitFromConfig(cfg); err != nil {
		log.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Infof("Starting on port %s", cfg.Port)
	logger.Infof("Environment: %s", cfg.Environment)
	logger.Infof("Log level: %s", cfg.LogLevel)
	if cfg.Monitoring.DebugServer.Enabled {
		logger.Infof("Monitoring endpoints on debug server port %d", cfg.Monitoring.DebugServer.Port)
	}

	srv, err := server.New(cfg)
	if err != nil {
		logger.Errorf("Failed to create server: %v", err)
		return 1
	}

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		logger.Errorf("Server failed to start: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, ln); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		return 1
	}
	return 0
}
