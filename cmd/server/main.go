// Package main is the entry point for the schedule server.
//
// The main package stays minimal: load configuration, build the logger,
// hand both to the server package, and block. All actual logic lives in
// internal/ so it can be tested without a process boundary.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/config"
	"github.com/Neetko/SCHEDULE-APP/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	// With a database path configured, make sure its directory exists so
	// the sqlite driver can create the file on first run.
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("path", cfg.DBPath),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger, clock.Real{})
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
