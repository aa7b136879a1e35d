package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hongminglow/drug-catalog-be/internal/config"
	"github.com/hongminglow/drug-catalog-be/internal/logging"
	"github.com/hongminglow/drug-catalog-be/internal/server"
	"github.com/hongminglow/drug-catalog-be/internal/storage/backend"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("init store")
	}
	defer store.Close()

	srv := server.New(cfg, store)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Str("driver", cfg.StoreDriver).Msg("drug catalog backend listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
