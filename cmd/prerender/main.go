package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"park_palace/internal/adapters/hotelapi"
	"park_palace/internal/adapters/observability"
	redisad "park_palace/internal/adapters/redis"
	"park_palace/internal/app"
	"park_palace/internal/render"
	"park_palace/internal/shared"
)

// prerender writes the home page once per menu category as static HTML,
// for serving from a CDN when the storefront is down.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("backend", cfg.BackendBase).
		Str("dir", cfg.PrerenderDir).
		Int("workers", cfg.PrerenderWorkers).
		Msg("prerender starting")

	client, err := hotelapi.New(cfg.BackendBase, cfg.BackendRPS, cfg.BackendTimeout,
		hotelapi.WithStrictStatus(cfg.BackendStrict), hotelapi.WithLogger(&log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}
	if err := os.MkdirAll(cfg.PrerenderDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir failed")
	}

	// static pages carry no notifications; the store is never read
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer store.Close()
	notifier := app.NewNotifier(store, cfg.NotificationTTL)
	r := render.MustNew()
	shell := app.NewShell(client, r, app.NewBookingFlow(client, notifier, cfg.HotelTZ), notifier, cfg.CopyrightStartYear)

	sem := semaphore.NewWeighted(int64(max(cfg.PrerenderWorkers, 1)))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, cat := range app.Categories {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := writePage(ctx, shell, r, cfg.PrerenderDir, category); err != nil {
				log.Warn().Str("category", category).Err(err).Msg("prerender failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Info().Str("category", category).Msg("prerender ok")
		}(cat.Key)
	}

	wg.Wait()
	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("prerender incomplete")
	}
	log.Info().Msg("prerender completed")
}

func outputName(category string) string {
	if category == app.DefaultCategory {
		return "index.html"
	}
	return filepath.Join("menu", category+".html")
}

// writePage leaves no file behind when any container failed to load.
func writePage(ctx context.Context, shell *app.Shell, r *render.Renderer, dir, category string) error {
	v, err := shell.StaticPage(ctx, category)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := r.Document(&b, v); err != nil {
		return err
	}
	path := filepath.Join(dir, outputName(category))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}
