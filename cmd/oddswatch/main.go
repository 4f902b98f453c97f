package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oddswatch/oddswatch/internal/fetch"
	pkgconfig "github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/logging"
	"github.com/oddswatch/oddswatch/internal/pkg/storage"
	"github.com/oddswatch/oddswatch/internal/report"
	"github.com/oddswatch/oddswatch/internal/tracker"
)

const (
	defaultConfigPath = "configs/oddswatch.yaml"
)

type config struct {
	configPath string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Tracker failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.LoadAndValidate(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = logging.SetupLogger(&appConfig.Log, "oddswatch")
	if err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	slog.Info("Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(ctx, cancel)

	t, cleanup, err := buildTracker(appConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := t.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Tracker finished", "status", result.Status.String())
	return nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()
	return cfg
}

func buildTracker(appConfig *pkgconfig.Config) (*tracker.Tracker, func(), error) {
	store, err := storage.NewFileStore(appConfig.Store.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create snapshot store: %w", err)
	}

	fetcher, err := fetch.New(appConfig)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var history storage.HistoryStore
	if appConfig.History.PostgresDSN != "" {
		postgresHistory, err := storage.NewPostgresHistoryStore(&appConfig.History)
		if err != nil {
			// The mirror is best-effort; the slot files stay authoritative.
			slog.Warn("History store unavailable, continuing without it", "error", err)
		} else {
			history = postgresHistory
			cleanup = func() {
				if err := postgresHistory.Close(); err != nil {
					slog.Warn("Failed to close history store", "error", err)
				}
			}
		}
	}

	t := tracker.New(tracker.Deps{
		Store:        store,
		History:      history,
		Fetcher:      fetcher,
		Notifiers:    buildNotifiers(appConfig),
		Reporter:     report.NewExcelReporter(appConfig.Report.Dir),
		ThresholdPct: appConfig.Alert.ThresholdPercent,
		LockPath:     appConfig.Lock.Path,
	})
	return t, cleanup, nil
}

func buildNotifiers(appConfig *pkgconfig.Config) []tracker.Notifier {
	return []tracker.Notifier{
		tracker.NewEmailNotifier(appConfig.Alert.Email),
		tracker.NewTelegramNotifier(appConfig.Alert.Telegram),
	}
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping tracker...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
