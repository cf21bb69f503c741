// Command dashboard aggregates one or more camera processes: it
// proxies their streams and snapshots, polls and caches their
// liveness, drives cooldown/budget-gated auto-restart, and serves a
// cached, disk-watched view of every camera's detection archive, per
// §4.7.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"meteorwatch-go/internal/dashapi"
	"meteorwatch-go/internal/dashconfig"
	"meteorwatch-go/internal/detectioncache"
	"meteorwatch-go/internal/monitor"
	"meteorwatch-go/internal/obslog"
	"meteorwatch-go/internal/proxy"
)

func main() {
	cfg := dashconfig.Load()
	obslog.Init(cfg.LogLevel)

	dashLog := obslog.NewServiceLogger("dashboard", "dashboard")

	if len(cfg.Cameras) == 0 {
		dashLog.Error().Msg("CAMERAS is required (e.g. cam1=http://localhost:8101)")
		os.Exit(2)
	}

	cameraNames := make([]string, len(cfg.Cameras))
	for i, cam := range cfg.Cameras {
		cameraNames[i] = cam.Name
	}

	ctx, cancel := context.WithCancel(context.Background())

	cache := detectioncache.New(cfg.DataDir, cameraNames, dashLog)
	mon := monitor.New(cfg, dashLog)
	prx := proxy.New(cfg.ProxyIdleTimeout, cfg.ProxyChunkSize)

	go cache.Run(ctx, cfg.DetectionCacheTTL)
	go mon.Run(ctx)

	server := dashapi.NewServer(cfg, cache, mon, prx, dashLog)
	server.Setup()

	go func() {
		if err := server.Start(); err != nil {
			dashLog.Fatal().Err(err).Msg("dashboard http server failed")
		}
	}()

	dashLog.Info().
		Int("port", cfg.Port).
		Int("camera_count", len(cfg.Cameras)).
		Msg("dashboard process started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	dashLog.Info().Msg("shutdown signal received")
	cancel()

	if err := server.Stop(cfg.ShutdownTimeout); err != nil {
		dashLog.Error().Err(err).Msg("http server forced to shutdown")
	} else {
		dashLog.Info().Msg("http server shutdown complete")
	}
}
