package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clinibook/server/internal/config"
	"clinibook/server/internal/notify"
	"clinibook/server/internal/service/booking"
	"clinibook/server/internal/store"
	filestore "clinibook/server/internal/store/file"
	memstore "clinibook/server/internal/store/memory"
	httptransport "clinibook/server/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "clinibook-server").Logger()
	if os.Getenv("ENV") == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Str("service", "clinibook-server").Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log = log.Level(parseLogLevel(cfg.LogLevel))

	var st store.Store
	if cfg.ReadOnlyFS {
		log.Info().Msg("read-only filesystem, using in-memory storage")
		st = memstore.New()
	} else {
		log.Info().Str("data_file", cfg.DataFile).Msg("using file storage")
		st = filestore.New(cfg.DataFile, log)
	}

	dispatcher := notify.NewDispatcher(config.MailFromEnv, nil, log)
	svc := booking.NewService(st, dispatcher, cfg.NotifyTimeout, log)

	e := httptransport.NewServer(httptransport.NewHandler(svc, log), cfg.StaticDir, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
	log.Info().Str("addr", addr).Str("log_level", cfg.LogLevel).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdown(log, e, cfg.ShutdownTimeout)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped with error")
		}
	}
}

func shutdown(log zerolog.Logger, e *echo.Echo, timeout time.Duration) {
	log.Info().Dur("timeout", timeout).Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed, closing")
		_ = e.Close()
		return
	}
	log.Info().Msg("http server stopped")
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
