package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-pantry/backend/config"
	"smart-pantry/backend/global"
	"smart-pantry/backend/initialize"

	"github.com/joho/godotenv"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		envFile    = flag.String("env", ".env", "Dotenv file loaded before the config")
		watch      = flag.Bool("watch", true, "Reload the config file on change")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		global.Logger.Fatal().Err(err).Str("file", *envFile).Msg("load env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("load config")
	}
	logCloser, err := initialize.InitLogger(cfg.Log)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("init logger")
	}
	defer logCloser.Close()

	app, err := initialize.BuildWithConfig(cfg)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch && *configPath != "" {
		if err := config.Watch(*configPath, app.ApplyReload, func(err error) {
			global.Logger.Warn().Err(err).Msg("config reload rejected")
		}); err != nil {
			global.Logger.Warn().Err(err).Msg("config watch disabled")
		}
	}
	app.RateLimit.StartCleanup(ctx, 10*time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		global.Logger.Info().Str("addr", srv.Addr).Str("db", cfg.DB.Driver).Msg("smart pantry listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			global.Logger.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		global.Logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			global.Logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}
