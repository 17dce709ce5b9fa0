package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/bandgap/config"
	"github.com/alejandrodnm/bandgap/internal/adapters/bandgapapi"
	"github.com/alejandrodnm/bandgap/internal/adapters/notify"
	"github.com/alejandrodnm/bandgap/internal/adapters/storage"
	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/history"
	"github.com/alejandrodnm/bandgap/internal/ports"
	"github.com/alejandrodnm/bandgap/internal/predictor"
	"github.com/spf13/cobra"
)

const retryWait = 500 * time.Millisecond

// flags globales compartidos por todos los subcomandos.
type rootFlags struct {
	configPath string
	verbose    bool
	logFormat  string
	dryRun     bool
}

// app agrupa las dependencias armadas en PersistentPreRunE.
type app struct {
	cfg     *config.Config
	slot    ports.Slot
	store   *history.Store
	client  *bandgapapi.Client
	console *notify.Console
	orch    *predictor.Orchestrator
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var a app
	err := rootCmd(&a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		// los errores de predicción ya se mostraron al usuario
		var (
			perr *domain.PredictionError
			verr *domain.ValidationError
		)
		if !errors.As(err, &perr) && !errors.As(err, &verr) {
			slog.Error("bandgap failed", "err", err)
		}
		cancel()
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "bandgap",
		Short: "Band gap predictions for solar cell materials",
		Long: `bandgap sends chemical formulas to the band gap prediction service,
keeps the last 20 predictions and summarizes them by category.

Materials between 1.1 and 1.4 eV are flagged as optimal for solar cells.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "config/config.yaml", "path to config file")
	pf.BoolVar(&flags.verbose, "verbose", false, "set log level to debug")
	pf.StringVar(&flags.logFormat, "format", "", "log format: text|json (overrides config)")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "keep history in memory only")

	cmd.AddCommand(
		predictCmd(a),
		historyCmd(a),
		statsCmd(a),
		clearCmd(a),
		modelCmd(a),
		healthCmd(a),
		datasetCmd(a),
	)
	return cmd
}

// setup carga config, logger, storage, cliente y orquestador.
func (a *app) setup(ctx context.Context, flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if flags.dryRun {
		cfg.Storage.Driver = storage.DriverMemory
	}
	setupLogger(cfg.Log)

	slog.Debug("bandgap starting",
		"config", flags.configPath,
		"api", cfg.API.BaseURL,
		"storage", cfg.Storage.Driver,
		"dsn", cfg.Storage.DSN,
	)

	slot, err := storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return err
	}

	opts := []bandgapapi.Option{
		bandgapapi.WithTimeout(cfg.Timeout()),
		bandgapapi.WithRetry(cfg.API.Retries, retryWait),
	}
	if cfg.API.RatePerSec > 0 {
		opts = append(opts, bandgapapi.WithRateLimit(cfg.API.RatePerSec, cfg.API.RateBurst))
	}

	a.cfg = cfg
	a.slot = slot
	a.store = history.NewStore(slot, cfg.Storage.Key)
	a.client = bandgapapi.NewClient(cfg.API.BaseURL, opts...)
	a.console = notify.NewConsole()
	a.orch = predictor.New(a.client, a.store,
		predictor.WithMetadata(a.client),
		predictor.WithPresenter(a.console),
	)
	a.orch.LoadHistory(ctx)
	return nil
}

// close libera el storage. Se llama también si el comando falló.
func (a *app) close() {
	if a.slot == nil {
		return
	}
	if err := a.slot.Close(); err != nil {
		slog.Warn("failed to close storage", "err", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stdout queda para las tablas del presentador
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
