// Command afids-web serves AFIDs fiducial file validation over HTTP.
//
// It offers:
//   - POST /api/v1/validate for .fcsv/.csv uploads
//   - SQLite persistence of validated sets
//   - GET/DELETE /api/v1/sets for stored sets
//
// Usage:
//
//	afids-web [flags]
//
// Flags:
//
//	-config string     YAML config file
//	-port int          HTTP server port (overrides config)
//	-db string         SQLite database path (overrides config)
//	-log-level string  Log level: debug, info, warn, error (overrides config)
//
// Examples:
//
//	# Start the web server with defaults
//	afids-web
//
//	# Use an in-memory database (for testing)
//	afids-web -db :memory:
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/afids/afids-go/internal/config"
	"github.com/afids/afids-go/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	configPath  = flag.String("config", "", "YAML config file")
	port        = flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath      = flag.String("db", "", "SQLite database path (overrides config)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("afids-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	srv, err := NewServer(ServerConfig{
		Port:                 cfg.Server.Port,
		DBPath:               cfg.Database.Path,
		Version:              Version,
		MaxUploadBytes:       cfg.Server.MaxUploadBytes,
		AllowDuplicateLabels: cfg.Parser.AllowDuplicateLabels,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		return 1
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting AFIDs web",
		zap.String("addr", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)),
		zap.String("database", cfg.Database.Path))

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server failed", zap.Error(err))
		return 1
	}

	return 0
}
