package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/db"
	"github.com/udisondev/quincy/internal/game/session"
	"github.com/udisondev/quincy/internal/storage"
	"github.com/udisondev/quincy/internal/ui"
)

const GameConfigPath = "config/quincy.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		fmt.Fprintf(os.Stderr, "quincy: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := GameConfigPath
	if p := os.Getenv("QUINCY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading game config: %w", err)
	}

	// stdout belongs to the terminal UI
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("quincy starting",
		"log_level", cfg.LogLevel,
		"storage_dir", cfg.StorageDir,
		"catalog", cfg.Database.Driver)

	source, err := db.OpenCatalog(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer source.Close()

	// An empty enemy list is fatal: no encounter can be built.
	catalog, err := data.Preload(ctx, source)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	store := storage.NewStore(cfg.StorageDir)
	if err := store.EnsureRoot(); err != nil {
		return err
	}

	tui := ui.NewTUI(ctx)
	s := session.New(cfg, tui, store, catalog, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err := s.Run(tui.Context()); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	slog.Info("quincy stopped")
	return nil
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
