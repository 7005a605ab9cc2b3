package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shelfnotes/internal/auth"
	"shelfnotes/internal/config"
	"shelfnotes/internal/httpapi"
	"shelfnotes/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mdb, err := store.Open(connectCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	log.Info().Msg("connected to mongodb")

	srv := httpapi.New(mdb.Store(), auth.NewTokenService(cfg.SecretKey), httpapi.Options{
		ClientOrigin:          cfg.ClientOrigin,
		FavoritesAuthRequired: cfg.FavoritesAuth,
	})

	httpSrv := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info().Str("port", cfg.Port).Msg("listening")

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server exited")
	case <-ctx.Done():
	}

	// Explicit lifecycle: stop accepting requests, then release the
	// store handle.
	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := mdb.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("shutdown complete")
}
