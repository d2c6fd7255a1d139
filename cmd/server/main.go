package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artifact-registry-service/internal/adapters/primary/http/handlers"
	"artifact-registry-service/internal/adapters/primary/http/middleware"
	"artifact-registry-service/internal/adapters/secondary/memory"
	"artifact-registry-service/internal/adapters/secondary/postgres"
	"artifact-registry-service/internal/adapters/secondary/scorer"
	"artifact-registry-service/internal/config"
	ports "artifact-registry-service/internal/core/ports/output"
	"artifact-registry-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Secondary Adapters (Output Ports - Repository)
	var repo ports.ArtifactRepository
	var pool *pgxpool.Pool

	switch cfg.Storage.Backend {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		log.Info("database connection established")

		repo = postgres.NewArtifactRepository(pool)
	case "memory":
		repo = memory.NewArtifactRepository()
		log.Info("using in-memory storage backend")
	default:
		log.Fatalf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	// Scorer Client (Optional - based on config)
	scorerClient := scorer.NewScorerClient(&cfg.Scorer)
	if cfg.Scorer.Enabled {
		if scorerClient.IsAvailable() {
			log.Info("scorer client initialized")
		} else {
			log.Warn("scorer unreachable (model registration will fail until it recovers)")
		}
	} else {
		log.Info("scorer integration disabled")
	}

	// Core Services (Application Layer)
	registrySvc := services.NewRegistryService(repo)
	ratingSvc := services.NewRatingService()

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(registrySvc, ratingSvc, scorerClient)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/registry")
	h.RegisterRoutes(api)

	// Health check with DB ping when postgres is in use
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
