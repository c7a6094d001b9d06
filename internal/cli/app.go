package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquaflow/aquaflow/internal/config"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/logger"
	"github.com/aquaflow/aquaflow/internal/telemetry"
)

// metricsShutdownTimeout bounds how long Close waits for /metrics scrapes.
const metricsShutdownTimeout = 2 * time.Second

// app is what every networked command needs: logging, metrics and the
// telemetry client, built from one resolved config.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	registry *prometheus.Registry
	client   *telemetry.Client

	closeLog      func() error
	metricsServer *http.Server
	metricsAddr   string
}

// newApp wires the logger, metrics registry and telemetry client. The caller
// must Close it.
func newApp(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:      cfg,
		log:      logger.Noop(),
		closeLog: func() error { return nil },
		registry: prometheus.NewRegistry(),
	}

	if cfg.Log.File != "" {
		log, closeLog, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return nil, aferrors.WrapWithCode(err, aferrors.ErrConfig,
				"Cannot open log file "+cfg.Log.File,
				"Point --log-file at a writable path")
		}
		a.log, a.closeLog = log, closeLog
	}
	logger.SetDefault(a.log)

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := telemetry.New(cfg.API.BaseURL, telemetry.WithMetrics(telemetry.NewMetrics(a.registry)))
	if err != nil {
		_ = a.closeLog()
		return nil, err
	}
	a.client = client

	a.log.Info("api %s", client.BaseURL())
	return a, nil
}

// serveMetrics starts the /metrics endpoint when an address is configured.
// Listen errors are returned; serve errors after that are only logged.
func (a *app) serveMetrics() error {
	addr := a.cfg.Metrics.Addr
	if addr == "" {
		return nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return aferrors.WrapWithCode(err, aferrors.ErrConfig,
			"Cannot serve metrics on "+addr,
			"Pick a free address with --metrics-addr, or leave it empty to disable metrics")
	}

	a.metricsAddr = ln.Addr().String()
	a.metricsServer = &http.Server{
		Handler:           metricsHandler(a.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metricsServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server: %v", err)
		}
	}()

	a.log.Info("metrics on http://%s/metrics", a.metricsAddr)
	return nil
}

// metricsHandler exposes reg at /metrics.
func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}

// Close stops the metrics server and flushes the log file.
func (a *app) Close() error {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.log.Warn("metrics server shutdown: %v", err)
		}
	}
	logger.SetDefault(logger.Noop())
	return a.closeLog()
}
