package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/railwatch/railwatch/internal/config"
	"github.com/railwatch/railwatch/pkg/monitor"
	"github.com/railwatch/railwatch/pkg/notify"
	"github.com/railwatch/railwatch/pkg/rail"
	"github.com/railwatch/railwatch/pkg/state"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

// errFetchFailed marks a test run where at least one departures fetch
// failed; Execute maps it to a distinct exit code.
var errFetchFailed = errors.New("one or more departure fetches failed")

var rootCmd = &cobra.Command{
	Use:   "railwatch",
	Short: "Railwatch - scheduled train monitoring with change-only alerts",
	Long: `Railwatch watches live departure boards for configured trips and sends an
alert only when a train's rider-relevant status changes: it gets cancelled,
its delay crosses a threshold or worsens, or it gains a platform. Run it from
cron; state between runs lives in a local store.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFetchFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.railwatch/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStore creates the notification state store from config.
func initStore(cfg *config.Config) (state.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return state.NewSQLiteStore(cfg.Storage.Path)
	default:
		return state.NewFileStore(cfg.Storage.Path)
	}
}

// initNotifiers creates alert notifiers from config.
func initNotifiers(cfg *config.Config) []notify.Notifier {
	var notifiers []notify.Notifier

	if cfg.Alerts.Telegram.Enabled && cfg.Alerts.Telegram.Token != "" {
		notifiers = append(notifiers, notify.NewTelegramNotifier(
			cfg.Alerts.Telegram.Token,
			cfg.Alerts.Telegram.ChatID,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}

// initStations loads the optional station name directory.
func initStations(cfg *config.Config, logger *slog.Logger) *rail.StationDirectory {
	if cfg.Stations.Path == "" {
		return nil
	}
	stations, err := rail.LoadStations(cfg.Stations.Path)
	if err != nil {
		logger.Warn("load stations file, falling back to CRS codes", "error", err)
		return nil
	}
	return stations
}

// initRunner creates a fully wired cycle runner.
func initRunner(cfg *config.Config, dryRun bool) (*monitor.Runner, state.Store, error) {
	logger := newLogger(cfg)

	trips, err := cfg.TripModels()
	if err != nil {
		return nil, nil, err
	}

	store, err := initStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	runner := monitor.NewRunner(monitor.RunnerOptions{
		Trips:        trips,
		Fetcher:      rail.NewClient(cfg.Fetch.BaseURL, cfg.FetchTimeout()),
		Notifiers:    initNotifiers(cfg),
		Store:        store,
		Stations:     initStations(cfg, logger),
		Logger:       logger,
		FetchTimeout: cfg.FetchTimeout(),
		MaxServices:  cfg.Fetch.MaxServices,
		DryRun:       dryRun,
	})

	return runner, store, nil
}

func printSummary(s *monitor.Summary) {
	fmt.Printf("Cycle complete:\n")
	fmt.Printf("  Trips evaluated:   %d\n", s.TripsEvaluated)
	fmt.Printf("  Trips active:      %d\n", s.TripsActive)
	fmt.Printf("  Services checked:  %d\n", s.ServicesChecked)
	fmt.Printf("  Alerts fired:      %d\n", s.AlertsFired)
	if s.ServicesSkipped > 0 {
		fmt.Printf("  Services skipped:  %d\n", s.ServicesSkipped)
	}
	if s.FetchFailures > 0 {
		fmt.Printf("  Fetch failures:    %d\n", s.FetchFailures)
	}
	if s.DeliveryFailures > 0 {
		fmt.Printf("  Delivery failures: %d\n", s.DeliveryFailures)
	}
}
