package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/internal/arb"
	"github.com/oddsmash/oddsmash-engine/internal/config"
	"github.com/oddsmash/oddsmash-engine/internal/handlers"
	"github.com/oddsmash/oddsmash-engine/internal/hitrate"
	"github.com/oddsmash/oddsmash-engine/internal/hub"
	"github.com/oddsmash/oddsmash-engine/internal/provider"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()

	fmt.Println("🚀 Starting Odds Engine")
	fmt.Printf("   Port: %s\n", cfg.Port)
	fmt.Printf("   League: %s\n", cfg.DefaultLeague)
	fmt.Printf("   Scan mode: %s (every %s, min %.2f%%)\n", cfg.ScanMode, cfg.ScanInterval, cfg.MinArbPct)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	// Optional Postgres connection for the hit-rate database tier
	var db *sql.DB
	if cfg.HitRateDB != "" {
		var err error
		db, err = sql.Open("postgres", cfg.HitRateDB)
		if err == nil {
			err = db.PingContext(ctx)
		}
		if err != nil {
			fmt.Printf("⚠️  Hit-rate database unavailable, cache tiers only: %v\n", err)
			db = nil
		} else {
			fmt.Println("✓ Connected to hit-rate database")
			defer db.Close()
		}
	}

	// Assemble the engine
	quotes := provider.NewRedisProvider(rdb)
	profiles := hitrate.NewStore(rdb, db).Loader()
	feed := arb.NewFeed(rdb)

	wsHub := hub.NewHub()
	go wsHub.Run(ctx)

	scanMode := models.ModePreMatch
	if cfg.ScanMode == string(models.ModeLive) {
		scanMode = models.ModeLive
	}
	scanner := arb.NewScanner(scanMode, cfg.MinArbPct)

	worker := arb.NewWorker(rdb, quotes, scanner, feed, wsHub, cfg.DefaultLeague, cfg.ScanInterval)
	go worker.Run(ctx)

	// When configured to pull from the vendor API, a refresher keeps the
	// Redis snapshots fresh via the per-book fan-out path.
	if cfg.QuoteSource == "api" {
		client := provider.NewAPIClient(cfg.OddsAPIBase, cfg.OddsAPIKey)
		source := provider.NewMultiBookProvider(client, cfg.Books, cfg.FetchConcurrency, cfg.FetchTimeout)
		refresher := provider.NewRefresher(rdb, source, cfg.DefaultLeague, cfg.ScanInterval)
		go refresher.Run(ctx)
	}

	h := handlers.NewHandler(quotes, profiles, feed, wsHub, cfg.DefaultLeague)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ladder", h.Ladder)
		r.Get("/ev", h.EV)
		r.Get("/arbitrage", h.Arbitrage)
		r.Get("/hit-rates", h.HitRates)
		r.Get("/ws", h.WebSocket)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		fmt.Printf("✓ HTTP server listening on :%s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("❌ Server error: %v\n", err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Println("\n🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("⚠️  Server shutdown error: %v\n", err)
	}

	if err := rdb.Close(); err != nil {
		fmt.Printf("⚠️  Redis close error: %v\n", err)
	}

	fmt.Println("✓ Shutdown complete")
}
