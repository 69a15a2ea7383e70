package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"park_palace/internal/adapters/hotelapi"
	server "park_palace/internal/adapters/http_server"
	"park_palace/internal/adapters/observability"
	redisad "park_palace/internal/adapters/redis"
	"park_palace/internal/app"
	"park_palace/internal/render"
	"park_palace/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// deps
	client, err := hotelapi.New(cfg.BackendBase, cfg.BackendRPS, cfg.BackendTimeout,
		hotelapi.WithStrictStatus(cfg.BackendStrict), hotelapi.WithLogger(&log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		// notifications degrade to none; pages still render
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}

	notifier := app.NewNotifier(store, cfg.NotificationTTL)
	r := render.MustNew().WithDismissAfter(notifier.TTL())
	booking := app.NewBookingFlow(client, notifier, cfg.HotelTZ)
	shell := app.NewShell(client, r, booking, notifier, cfg.CopyrightStartYear)

	// http
	srv := server.New(cfg.BackendTimeout + 5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Shell: shell, R: r})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.BackendBase).Msg("storefront listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("storefront stopped")
}
