package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	"checkers/internal/logging"
	httpserver "checkers/internal/server/http"
	"checkers/internal/server/game"
	"checkers/internal/server/ws"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = 10 * time.Minute
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP and websocket game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "listen address",
				Value:   config.DefaultAddr,
				EnvVars: []string{config.EnvAddr},
			},
			&cli.StringFlag{
				Name:  "web-dir",
				Usage: "serve static files from this directory under /web/",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "open the web pages in the default browser (needs --web-dir)",
			},
			&cli.DurationFlag{
				Name:  "idle",
				Usage: "drop games idle for longer than this (0 keeps them)",
				Value: 2 * time.Hour,
			},
		},
		Action: func(cCtx *cli.Context) error {
			cfg, err := loadConfig(cCtx)
			if err != nil {
				return err
			}
			webDir := cCtx.String("web-dir")
			if cCtx.Bool("open") && webDir != "" {
				openBrowserSoon(browserURL(cfg.Addr))
			}
			return serve(cCtx.Context, cfg, webDir, cCtx.Duration("idle"))
		},
	}
}

func serve(ctx context.Context, cfg config.Config, webDir string, idle time.Duration) error {
	games := game.NewManager(logging.Component("games"))
	hub := ws.NewHub(logging.Component("ws"))
	h := httpserver.NewHandler(games, hub, cfg.Side, logging.Component("http"))

	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go hub.Run(sigCtx.Done())
	if idle > 0 {
		go sweep(sigCtx, games, idle)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewRouter(h, httpserver.Options{WebDir: webDir}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Info().Str("addr", cfg.Addr).Int("side", cfg.Side).Msg("server listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}
	return runErr
}

func sweep(ctx context.Context, games *game.Manager, idle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			games.Sweep(idle)
		}
	}
}
