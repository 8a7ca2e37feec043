// Package app wires the durability queue, its reference replay sink, and
// the health/metrics HTTP surface into a single runnable process.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"durableq/internal/pebblesink"
	"durableq/internal/retention"
	"durableq/pkg/banner"
	"durableq/pkg/config"
	"durableq/pkg/dlq"
)

// Record is the concrete payload type this process's durability queue
// carries. The durability queue itself (pkg/dlq) is generic over record
// schema; a process picks one concrete instantiation, the same way a
// caller of a generic container picks a type argument.
type Record = map[string]any

// App encapsulates the durability queue's background loops and its
// health/metrics HTTP server.
type App struct {
	eff     config.EffectiveConfigResult
	version string

	dlqCfg dlq.Config
	sink   *pebblesink.Sink[Record]

	retentionCancel context.CancelFunc
	srv             *http.Server
}

// New opens the reference replay sink and prepares the durability queue
// configuration. It does not start the background loops or the HTTP
// server; call Run for that.
func New(eff config.EffectiveConfigResult, version string) (*App, error) {
	_ = godotenv.Load(".env")

	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	dlqCfg := toDLQConfig(eff.Config.DLQ)

	sinkPath := eff.Config.DLQ.ReplaySinkDBPath
	if sinkPath == "" {
		sinkPath = "./.dlq-sink"
	}
	sink, err := pebblesink.Open[Record](sinkPath)
	if err != nil {
		return nil, fmt.Errorf("open replay sink: %w", err)
	}

	return &App{eff: eff, version: version, dlqCfg: dlqCfg, sink: sink}, nil
}

func toDLQConfig(c config.DLQConfig) dlq.Config {
	rc := c.ToDLQConfig()
	return dlq.Config{
		Enabled:             rc.Enabled,
		BasePath:            rc.BasePath,
		MaxDiskMB:           rc.MaxDiskMB,
		BatchTTLHours:       rc.BatchTTLHours,
		ReplayOnStartup:     rc.ReplayOnStartup,
		ReplayIntervalSecs:  rc.ReplayIntervalSecs,
		CleanupIntervalSecs: rc.CleanupIntervalSecs,
		Tables:              rc.Tables,
	}
}

// Run starts the background replay/cleanup loops and the HTTP server, and
// blocks until ctx is canceled or the HTTP server fails fatally.
func (a *App) Run(ctx context.Context) error {
	banner.Print(a.eff, a.version)

	a.retentionCancel = retention.Start[Record](ctx, a.dlqCfg, a.sink)

	errCh := a.startHTTP()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *App) startHTTP() <-chan error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	a.srv = &http.Server{Addr: a.eff.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- a.srv.ListenAndServe() }()
	return errCh
}

// Shutdown stops the background loops, the HTTP server, and closes the
// replay sink.
func (a *App) Shutdown(ctx context.Context) error {
	if a.retentionCancel != nil {
		a.retentionCancel()
	}
	if a.srv != nil {
		ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(ctx2)
	}
	if a.sink != nil {
		_ = a.sink.Close()
	}
	return nil
}
