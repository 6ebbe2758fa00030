package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"nachweis/internal/audit"
	"nachweis/internal/compliance"
	complianceHandler "nachweis/internal/compliance/handler"
	complianceMetrics "nachweis/internal/compliance/metrics"
	contractorstore "nachweis/internal/contractor/store"
	"nachweis/internal/jwttoken"
	"nachweis/internal/platform/config"
	"nachweis/internal/platform/httpserver"
	"nachweis/internal/platform/logger"
	"nachweis/internal/platform/metrics"
	"nachweis/internal/platform/postgres"
	"nachweis/internal/platform/ratelimit"
	platformredis "nachweis/internal/platform/redis"
	requirementHandler "nachweis/internal/requirement/handler"
	requirementService "nachweis/internal/requirement/service"
	requirementstore "nachweis/internal/requirement/store"
	httptransport "nachweis/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.Migrate(db); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		log.Error("kafka connection failed", "error", err)
		os.Exit(1)
	}
	var auditSink audit.Sink
	if kafkaSink != nil {
		auditSink = kafkaSink
		defer kafkaSink.Close()
	}

	auditStore := audit.NewPostgresStore(db)
	auditPublisher := audit.NewPublisher(auditStore, auditSink, log)

	contractors := contractorstore.NewPostgres(db)
	documents := requirementstore.NewPostgres(db)

	var summaryCache *compliance.SummaryCache
	if redisClient != nil {
		summaryCache = compliance.NewSummaryCache(redisClient.Client, cfg.SummaryTTL)
	}

	complianceService := compliance.NewService(
		contractors,
		documents,
		compliance.DefaultPolicy(),
		auditPublisher,
		complianceMetrics.New(),
		summaryCache,
		log,
		cfg.LookaheadDays,
	)
	var serviceOpts []requirementService.Option
	if cfg.StrictReview {
		serviceOpts = append(serviceOpts, requirementService.WithStrictReview())
	}
	documentService := requirementService.New(documents, auditPublisher, cfg.LookaheadDays, serviceOpts...)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "nachweis")
	appMetrics := metrics.New()

	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimit, time.Minute)
	} else {
		limiter = ratelimit.NewInMemory(cfg.RateLimit, time.Minute)
	}

	router := httptransport.NewRouter(
		log,
		appMetrics,
		jwtService,
		limiter,
		complianceHandler.New(complianceService, log),
		requirementHandler.New(documentService, complianceService, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting nachweis server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
