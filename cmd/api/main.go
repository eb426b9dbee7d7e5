// @title Kanso Insights API
// @version 1.0
// @description Heatmaps, streaks and reduction trends over habit records.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/comitanigiacomo/kanso-insights/docs"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-insights/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/metrics"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-insights/internal/config"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/core/workers"
)

type app struct {
	router    *gin.Engine
	worker    *workers.StreakWorker
	scheduler *workers.StreakScheduler
}

func main() {
	startTime := time.Now()

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Critical: Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Critical: Invalid config: %v", err)
	}

	log.Println("[INFO] Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	log.Println("[INFO] Database connected successfully.")

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Printf("[CACHE] Redis unavailable, running without cache and rate limiting: %v", err)
	} else {
		defer rdb.Close()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	a, err := buildApp(ctx, cfg, db, rdb, startTime)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	a.worker.Start(ctx)
	a.scheduler.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[INFO] Kanso Insights running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] Stop signal received. Shutting down...")

	stop()
	a.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("[INFO] Server stopped gracefully.")
}

// buildApp wires every component without starting background goroutines.
// rdb may be nil: the cache and the rate limiter are then skipped.
func buildApp(ctx context.Context, cfg *config.Config, db *sqlx.DB, rdb *redis.Client, startTime time.Time) (*app, error) {
	m := metrics.New()

	var repo domain.SeriesRepository = repository.NewPostgresSeriesRepository(db)
	if rdb != nil {
		repo = repository.NewCachedSeriesRepository(repo, rdb, cfg.Redis.CacheTTL, m)
	}

	analyticsService := services.NewAnalyticsService(repo, cfg.Analytics.Workers)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	worker := workers.NewStreakWorker(analyticsService)
	scheduler := workers.NewStreakScheduler(ctx, repo, worker)
	if err := scheduler.Register(cfg.Analytics.StreakCron); err != nil {
		return nil, err
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AnalyticsHandler:   adapterHTTP.NewAnalyticsHandler(analyticsService),
		TokenValidator:     tokenService,
		Metrics:            m,
		DB:                 db,
		Redis:              rdb,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		StartTime:          startTime,
	})

	return &app{
		router:    router,
		worker:    worker,
		scheduler: scheduler,
	}, nil
}
