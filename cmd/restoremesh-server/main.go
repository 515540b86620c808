package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/infra/buildinfo"
	"github.com/yndnr/restoremesh-go/internal/infra/confloader"
	"github.com/yndnr/restoremesh-go/internal/infra/shutdown"
	"github.com/yndnr/restoremesh-go/internal/server/config"
	"github.com/yndnr/restoremesh-go/internal/server/wsserver"
	"github.com/yndnr/restoremesh-go/internal/storage/memory"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
	"github.com/yndnr/restoremesh-go/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "restoremesh-server",
		Usage:   "WebSocket connection restoration server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"RESTOREMESH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.addr)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides log.level)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	configFile := c.String("config")

	cfg, err := config.Load(configFile, overrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.ToLoggerConfig())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting restoremesh-server", append(buildinfo.LogAttrs(), "config", configFile)...)

	metrics := metric.NewRegistry()
	registry := memory.NewRegistry()
	metrics.MustRegister(metric.NewCollector(registry.Len))

	svc, err := service.NewRestoreService(registry, cfg.ToRestoreConfig(),
		service.WithLogger(log),
		service.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("init restore service: %w", err)
	}
	svc.Start()

	srv, err := wsserver.New(cfg.ToTransportConfig(), svc,
		wsserver.WithLogger(log),
		wsserver.WithMetrics(metrics),
	)
	if err != nil {
		_ = svc.Close()
		return fmt.Errorf("init server: %w", err)
	}

	sh := shutdown.NewHandler(cfg.Server.ShutdownTimeout, shutdown.WithLogger(log))

	// Hooks run in reverse registration order.
	sh.OnShutdown("restore service", func(context.Context) error {
		return svc.Close()
	})
	sh.OnShutdown("websocket server", srv.Shutdown)

	if configFile != "" {
		watcher, err := watchConfig(configFile, c, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			sh.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			sh.Trigger()
		}
	}()

	if err := sh.Wait(c.Context); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// overrides maps command line flags onto configuration keys.
func overrides(c *cli.Context) map[string]any {
	m := map[string]any{}
	if c.IsSet("addr") {
		m["server.addr"] = c.String("addr")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	return m
}

// watchConfig reloads the file on change and applies the new log level.
// Other settings take effect on restart.
func watchConfig(path string, c *cli.Context, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, overrides(c))
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		if logger.SetLevel(cfg.Log.Level) {
			log.Info("log level changed", "level", logger.GetLevel())
		}
	})
	w.StartAsync()
	return w, nil
}
