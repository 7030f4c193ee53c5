package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/vmunix/kinobot/internal/bot"
	"github.com/vmunix/kinobot/internal/config"
	"github.com/vmunix/kinobot/internal/discord"
	"github.com/vmunix/kinobot/internal/events"
	"github.com/vmunix/kinobot/internal/migrations"
	"github.com/vmunix/kinobot/internal/server"
	"github.com/vmunix/kinobot/internal/titles"
	"github.com/vmunix/kinobot/internal/watchlist"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig resolves the config file. With no explicit path and nothing on
// the search path, built-in defaults plus KINOBOT_TOKEN are used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, err := config.Discover()
		switch {
		case errors.Is(err, config.ErrNotFound):
			cfg := config.Default()
			if errs := cfg.Validate(); len(errs) > 0 {
				return nil, "", &config.ConfigError{Errors: errs}
			}
			return cfg, "", nil
		case err != nil:
			return nil, "", err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func openEventLog(path string) (*sql.DB, *events.EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create event log dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open event log: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, events.NewEventLog(db), nil
}

func runServer(configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Bot.LogLevel),
	}))
	if path == "" {
		logger.Info("no config file found, using defaults")
	} else {
		logger.Info("loaded config", "path", path)
	}

	// === Event log (optional) ===
	var eventLog *events.EventLog
	if cfg.Events.Path != "" {
		db, el, err := openEventLog(cfg.Events.Path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		eventLog = el
	}

	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Stores ===
	list, err := watchlist.Open(cfg.Watchlist.Path, bus, logger.With("component", "watchlist"))
	if err != nil {
		return fmt.Errorf("watchlist: %w", err)
	}
	defer func() { _ = list.Close() }()

	records, err := titles.LoadFile(cfg.Titles.Path)
	if err != nil {
		return err
	}
	index := titles.Build(records)
	logger.Info("title dataset loaded",
		"path", cfg.Titles.Path,
		"records", index.Len(),
		"watchlist_entries", len(list.Snapshot()))

	// === Bot ===
	router := bot.NewRouter(list, index, cfg.Bot.Prefix, logger.With("component", "router"))
	client, err := discord.New(cfg.Bot.Token, cfg.Bot.Prefix, router, logger.With("component", "discord"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(client, bus, eventLog, server.Config{
		Retention: cfg.Events.Retention,
	}, logger.With("component", "runner"))

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}
