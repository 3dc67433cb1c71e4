package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zinnia/internal/domain"
)

const namespace = "zinnia"

// Metrics records lamp activity. It satisfies application.Recorder.
type Metrics struct {
	batches    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	lampOn     prometheus.Gauge
	brightness prometheus.Gauge
}

func New(registry prometheus.Registerer, deviceID string) *Metrics {
	labels := prometheus.Labels{"device_id": deviceID}

	m := &Metrics{
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "command_batches_total",
			Help:        "Command batches sent to the lamp, by action and outcome.",
			ConstLabels: labels,
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "command_batch_duration_seconds",
			Help:        "Time taken by the transport to answer a command batch.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"action"}),
		lampOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "lamp_on",
			Help:        "1 if the lamp last reported being on.",
			ConstLabels: labels,
		}),
		brightness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "lamp_brightness_percent",
			Help:        "Last known brightness in percent.",
			ConstLabels: labels,
		}),
	}

	registry.MustRegister(m.batches, m.duration, m.lampOn, m.brightness)
	return m
}

func (m *Metrics) ObserveBatch(action string, took time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.batches.WithLabelValues(action, outcome).Inc()
	m.duration.WithLabelValues(action).Observe(took.Seconds())
}

func (m *Metrics) ObserveState(state domain.LampState) {
	if state.On {
		m.lampOn.Set(1)
	} else {
		m.lampOn.Set(0)
	}
	m.brightness.Set(float64(state.BrightnessPercent()))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutting down metrics server", "error", err)
		}
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
