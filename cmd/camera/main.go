// Command camera runs one camera's complete detection pipeline and
// HTTP surface: stream reading, ring buffering, frame-differencing
// detection, tracking, clip writing, and the preview/control API of
// §4.6. One process per camera, per the fault-isolation model of §5.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"meteorwatch-go/internal/api"
	"meteorwatch-go/internal/camconfig"
	"meteorwatch-go/internal/camera"
	"meteorwatch-go/internal/obslog"
)

func main() {
	cfg := camconfig.Load()
	obslog.Init(cfg.LogLevel)

	camLog := obslog.NewServiceLogger("camera", cfg.CameraID)

	if cfg.LogdyEnabled {
		if writer, url, err := obslog.StartLogdy(cfg.LogdyHost, cfg.LogdyPort); err != nil {
			camLog.Warn().Err(err).Msg("logdy init failed, continuing without embedded log viewer")
		} else {
			log.Logger = log.Output(io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, writer))
			camLog = obslog.NewServiceLogger("camera", cfg.CameraID)
			camLog.Info().Str("url", url).Msg("logdy log viewer available")
		}
	}

	if cfg.RTSPURL == "" {
		camLog.Error().Msg("RTSP_URL is required")
		os.Exit(2)
	}

	svc, err := camera.New(cfg, camLog)
	if err != nil {
		camLog.Error().Err(err).Msg("failed to initialize camera service")
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())

	server := api.NewServer(cfg, svc, camLog)
	server.Setup()

	go func() {
		if err := server.Start(); err != nil {
			camLog.Fatal().Err(err).Msg("camera http server failed")
		}
	}()

	go func() {
		if err := svc.Run(ctx); err != nil && err != context.Canceled {
			camLog.Error().Err(err).Msg("camera pipeline stopped")
		}
	}()

	camLog.Info().
		Str("camera_id", cfg.CameraID).
		Int("port", cfg.Port).
		Str("rtsp_url", cfg.RTSPURL).
		Str("sensitivity", cfg.Sensitivity).
		Msg("camera process started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	camLog.Info().Msg("shutdown signal received")
	cancel()

	if err := server.Stop(cfg.ShutdownTimeout); err != nil {
		camLog.Error().Err(err).Msg("http server forced to shutdown")
	} else {
		camLog.Info().Msg("http server shutdown complete")
	}
}
