package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"zinnia/config"
	"zinnia/internal/application"
	"zinnia/internal/domain"
	"zinnia/internal/infra"
	"zinnia/internal/infra/metrics"
	"zinnia/internal/infra/pushover"
	"zinnia/internal/infra/tuya"
)

// Lamp is what the command line drives; *application.Controller implements it.
type Lamp interface {
	application.Dimmer
	TurnOn(ctx context.Context) error
	TurnOnAt(ctx context.Context, percent int) error
	TurnOff(ctx context.Context) error
	Toggle(ctx context.Context) error
	Status(ctx context.Context) (domain.LampState, error)
	Info(ctx context.Context) (domain.Device, error)
}

// App holds everything a command needs once configuration is loaded.
type App struct {
	Lamp     Lamp
	Notifier application.Notifier
	Ramp     application.Ramp
	Delay    time.Duration
	Pause    time.Duration
	Logger   *slog.Logger

	MetricsAddr string
	Gatherer    prometheus.Gatherer
}

// Builder turns the global flags into an App.
type Builder func(configPath, logLevel string) (*App, error)

// NewApp wires the Tuya transport, metrics and notifier around a Controller.
func NewApp(configPath, logLevel string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := setupLogger(cfg.Log)

	retry := infra.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Retry.MaxAttempts
	retry.InitialDelay = config.Duration(cfg.Retry.InitialDelay)
	retry.MaxDelay = config.Duration(cfg.Retry.MaxDelay)

	var client *tuya.Client
	if cfg.Tuya.Endpoint != "" {
		client = tuya.NewClientWithURL(cfg.Tuya.AccessID, cfg.Tuya.AccessKey, cfg.Tuya.Endpoint)
	} else {
		client = tuya.NewClient(cfg.Tuya.AccessID, cfg.Tuya.AccessKey, cfg.Tuya.Region)
	}
	client = client.
		WithRetry(retry).
		WithTimeout(config.Duration(cfg.Tuya.Timeout)).
		WithLogger(logger.With("component", "tuya"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.New(registry, cfg.Tuya.DeviceID)

	var notifier application.Notifier = &application.NoopNotifier{}
	if cfg.Pushover.Enabled {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey, "Zinnia")
	}

	ramp := application.Ramp{Start: cfg.Routine.Start, End: cfg.Routine.End, Step: cfg.Routine.Step}
	if err := ramp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid routine: %w", err)
	}

	logger.Debug("configuration loaded",
		"device_id", cfg.Tuya.DeviceID,
		"region", cfg.Tuya.Region,
		"endpoint", cfg.Tuya.Endpoint,
	)

	return &App{
		Lamp:        application.NewController(client, cfg.Tuya.DeviceID, recorder, logger),
		Notifier:    notifier,
		Ramp:        ramp,
		Delay:       config.Duration(cfg.Routine.Delay),
		Pause:       config.Duration(cfg.Interactive.Pause),
		Logger:      logger,
		MetricsAddr: cfg.Metrics.Addr,
		Gatherer:    registry,
	}, nil
}

// serveMetrics exposes /metrics for the lifetime of ctx when an address is
// configured.
func (a *App) serveMetrics(ctx context.Context) {
	if a.MetricsAddr == "" || a.Gatherer == nil {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, a.MetricsAddr, a.Gatherer, a.Logger); err != nil {
			a.Logger.Error("metrics server", "error", err)
		}
	}()
}

// report turns a lamp result into the line shown to the user.
func report(out io.Writer, err error, success string) {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		fmt.Fprintln(out, "✅ "+success)
	case errors.As(err, &verr):
		fmt.Fprintf(out, "❌ Brightness must be between %d%% and %d%%\n", verr.Min, verr.Max)
	case errors.Is(err, domain.ErrTransport):
		fmt.Fprintf(out, "❌ The lamp did not accept the command: %v\n", err)
	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}
}
