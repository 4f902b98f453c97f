// Command alert-test sends a test message through every configured alert
// channel so credentials can be checked without waiting for a real odds move.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	pkgconfig "github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/logging"
	"github.com/oddswatch/oddswatch/internal/tracker"
)

const defaultConfigPath = "configs/oddswatch.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Alert test failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var configPath, message string
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&message, "message", "Alert channels are wired up correctly.", "Test message text")
	flag.Parse()

	appConfig, err := pkgconfig.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logging.SetupLogger(&appConfig.Log, "alert-test"); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifiers := []tracker.Notifier{
		tracker.NewEmailNotifier(appConfig.Alert.Email),
		tracker.NewTelegramNotifier(appConfig.Alert.Telegram),
	}

	configured, failed := 0, 0
	for _, notifier := range notifiers {
		if !notifier.Configured() {
			slog.Info("Channel not configured, skipping", "channel", notifier.Channel())
			continue
		}
		configured++
		if err := notifier.SendTest(ctx, message); err != nil {
			failed++
			slog.Error("Test alert failed", "channel", notifier.Channel(), "error", err)
			continue
		}
		slog.Info("Test alert sent", "channel", notifier.Channel())
	}

	if configured == 0 {
		return fmt.Errorf("no alert channels configured (set email and/or telegram credentials)")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d configured channels failed", failed, configured)
	}
	return nil
}
