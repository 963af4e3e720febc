package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/internal/config"
	"github.com/yndnr/calllog-go/internal/infra/confloader"
	"github.com/yndnr/calllog-go/internal/infra/shutdown"
	"github.com/yndnr/calllog-go/internal/telemetry/instrument"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
	"github.com/yndnr/calllog-go/internal/telemetry/metric"
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Run until interrupted, reloading the configuration file on change",
		Description: "Applies log.level and redact.keys from the configuration file whenever it\n" +
			"changes. With --metrics-addr, serves Prometheus metrics at /metrics.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Listen address for /metrics (default: metrics.addr)",
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for shutdown hooks",
				Value: 10 * time.Second,
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	f, root, err := e.openLogs(c)
	if err != nil {
		return err
	}
	defer f.Close()

	reg, err := metric.NewRegistry(metric.NewProcSampler())
	if err != nil {
		return err
	}

	in := instrument.New(
		instrument.WithLogger(root),
		instrument.WithMasker(e.cfg.Masker()),
		instrument.WithMetrics(reg.Calls),
	)

	h := shutdown.NewHandler(c.Duration("shutdown-timeout"), shutdown.WithLogger(root))

	if path := e.loader.FilePath(); path != "" {
		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(root))
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Watch(path); err != nil {
			w.Stop()
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.OnChange(func(string) {
			_ = in.Do(context.Background(), "config.reload", instrument.Positional(path), func(context.Context) error {
				return reload(e.loader, f, in, root)
			})
		})
		w.StartAsync()
		h.OnShutdown("watcher", func(context.Context) error { return w.Stop() })
	}

	addr := e.cfg.Metrics.Addr
	if c.IsSet("metrics-addr") {
		addr = c.String("metrics-addr")
	}
	if addr != "" {
		srv, bound, err := serveMetrics(addr, reg, root)
		if err != nil {
			return err
		}
		root.Info("metrics endpoint listening", "addr", bound.String())
		h.OnShutdown("metrics", srv.Shutdown)
	}

	root.Info("watching", "sources", strings.Join(e.loader.Sources(), ","), "level", f.Level())
	return h.Wait(c.Context)
}

// reload re-reads the configuration and applies the settings that can
// change at runtime. The new denylist covers call arguments and the
// attributes of every logger built by f.
func reload(l *confloader.Loader, f *logger.Factory, in *instrument.Instrumentor, log logger.Logger) error {
	cfg, err := config.Reload(l)
	if err != nil {
		return fmt.Errorf("reload configuration: %w", err)
	}
	f.SetLevel(cfg.Log.Level)
	in.SetSecrets(cfg.Redact.Keys)
	f.SetMasker(in.Masker())
	log.Info("configuration reloaded", "level", f.Level(), "secret_keys", len(cfg.Redact.Keys))
	return nil
}

// serveMetrics listens on addr and serves reg at /metrics. Server errors
// are logged through an hclog bridge onto log.
func serveMetrics(addr string, reg *metric.Registry, log logger.Logger) (*http.Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())

	hl := logger.NewHCLogger(log).Named("metrics")
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          hl.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hl.Error("metrics server stopped", "error", err)
		}
	}()

	return srv, ln.Addr(), nil
}
