package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"condogov/internal/auth"
	authhandler "condogov/internal/auth/handler"
	authstore "condogov/internal/auth/store"
	"condogov/internal/condo/adapter"
	"condogov/internal/condo/engine"
	condohandler "condogov/internal/condo/handler"
	condometrics "condogov/internal/condo/metrics"
	"condogov/internal/condo/models"
	condostore "condogov/internal/condo/store"
	"condogov/internal/events"
	"condogov/internal/platform/config"
	"condogov/internal/platform/httpserver"
	"condogov/internal/platform/logger"
	"condogov/internal/platform/metrics"
	"condogov/internal/platform/middleware"
	platformredis "condogov/internal/platform/redis"
	profilehandler "condogov/internal/profile/handler"
	profileservice "condogov/internal/profile/service"
	profilestore "condogov/internal/profile/store"
	"condogov/pkg/requestcontext"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	owner := models.Address(cfg.OwnerWallet).Normalized()
	if owner.IsZero() {
		log.Error("CONDO_OWNER_WALLET must be set to a valid wallet address")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.New()
	condoMetrics := condometrics.New()

	bus := events.NewBus(256, log)
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.EventsTopic)
		if err != nil {
			log.Error("kafka publisher init failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
	}
	worker := events.NewWorker(bus, publisher, log)
	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("event worker stopped", "error", err)
		}
	}()

	ledger := condostore.NewMemory(cfg.MonthlyQuota)
	gov := engine.New(ledger, owner,
		engine.WithLogger(log),
		engine.WithMetrics(condoMetrics),
		engine.WithEventSink(bus),
	)

	facade := adapter.New(owner)
	bootCtx := requestcontext.WithWallet(ctx, owner)
	if err := facade.Upgrade(bootCtx, gov); err != nil {
		log.Error("failed to install governance implementation", "error", err)
		os.Exit(1)
	}

	var profiles profilestore.Store
	if cfg.PostgresURL != "" {
		db, err := sql.Open("pgx", cfg.PostgresURL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := profilestore.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("postgres schema migration failed", "error", err)
			os.Exit(1)
		}
		profiles = pg
	} else {
		log.Warn("CONDO_POSTGRES_URL not set, using in-memory profile store")
		profiles = profilestore.NewMemoryStore()
	}

	var revocations authstore.RevocationStore = authstore.NewMemoryRevocations()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		revocations = authstore.NewRedisRevocations(redisClient.Client)
	}

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, "condogov")
	sessions := auth.NewService(facade, jwtService, revocations, cfg.JWTTTL, log)
	profileService := profileservice.New(profiles)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(httpMetrics))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.ContentTypeJSON)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	authhandler.New(sessions, httpMetrics, log).Register(router)
	condohandler.New(facade, jwtService, sessions.IsRevoked, log).Register(router)
	profilehandler.New(profileService, jwtService, sessions.IsRevoked, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting condogov", "addr", cfg.Addr, "owner", owner)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
