package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/skynet2/ogwallet-vault/pkg/app"
	"github.com/skynet2/ogwallet-vault/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx := cfg.Logger(context.Background())

	a, err := app.New(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	if err = a.Unlock(ctx, cfg.VaultPassphrase); err != nil {
		log.Fatal().Err(err).Msg("failed to unlock vault")
	}

	defer a.Close(ctx)

	r := mux.NewRouter()

	handle := NewHandler(a.Processor, a.Session, cfg.ApiKey, cfg.ScanDaysBack)
	handle.Register(r)

	srv := newServer(cfg, r)

	log.Info().Str("addr", srv.Addr).Msg("listening")

	if err = srv.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Handler:      h,
		Addr:         cfg.ListenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
