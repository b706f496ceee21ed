package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"aquads/internal/forms/events"
	formsHandler "aquads/internal/forms/handler"
	"aquads/internal/forms/service"
	"aquads/internal/forms/store"
	"aquads/internal/platform/config"
	"aquads/internal/platform/database"
	"aquads/internal/platform/health"
	"aquads/internal/platform/httpserver"
	"aquads/internal/platform/logger"
	"aquads/internal/platform/metrics"
	"aquads/internal/platform/redis"
	ratelimitMW "aquads/internal/ratelimit/middleware"
	"aquads/internal/ratelimit/store/window"
	httptransport "aquads/internal/transport/http"
	"aquads/pkg/platform/circuit"
)

type formStore interface {
	service.Store
	Ping(ctx context.Context) error
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/forms.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}
	log := logger.New(cfg.Log.Format, cfg.Log.Level)
	proxies, err := cfg.Server.Proxies()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	db, st := openStore(ctx, cfg.Database, log)
	probes := health.New(log).Require("database", st.Ping)

	serviceOpts := []service.Option{service.WithLogger(log), service.WithMetrics(m)}
	publisher := buildPublisher(ctx, cfg.Events, log)
	if publisher != nil {
		serviceOpts = append(serviceOpts, service.WithEventPublisher(publisher))
	}

	formsService, err := service.New(st, serviceOpts...)
	if err != nil {
		log.Error("failed to build form service", "error", err)
		return 1
	}

	handlerOpts := []formsHandler.Option{formsHandler.WithMaxBodyBytes(cfg.Server.MaxBodyBytes)}
	redisClient := buildRedis(ctx, cfg.RateLimit, log)
	if redisClient != nil {
		probes.Observe("redis", redisClient.Health)
	}
	if cfg.RateLimit.Enabled() {
		memory := window.NewInMemory()
		go memory.RunSweeper(ctx, cfg.RateLimit.Window)
		var limiterStore ratelimitMW.Store = memory
		if redisClient != nil {
			breaker := circuit.New("ratelimit-redis")
			limiterStore = ratelimitMW.NewFallbackStore(window.NewRedis(redisClient.Client), memory, breaker, log)
		}
		limiter := ratelimitMW.New(limiterStore, cfg.RateLimit.Limit, cfg.RateLimit.Window, log, ratelimitMW.WithMetrics(m))
		handlerOpts = append(handlerOpts, formsHandler.WithSubmitMiddleware(limiter.RateLimit))
		log.Info("submission rate limit enabled",
			"limit", cfg.RateLimit.Limit,
			"window", cfg.RateLimit.Window.String(),
			"shared", redisClient != nil,
		)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        m,
		Gatherer:       reg,
		Health:         probes,
		RequestTimeout: cfg.Server.RequestTimeout,
		TrustedProxies: proxies,
	}, formsHandler.New(formsService, log, handlerOpts...))

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting aquads", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
	log.Info("admin dashboard available", "path", "/admin.html")
	log.Warn("admin endpoints under /api/admin are not authenticated; restrict access at the proxy")

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}

	publisher.Close()
	if err := redisClient.Close(); err != nil {
		log.Error("failed to close redis", "error", err)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		} else {
			log.Info("database connection closed")
		}
	}
	return exitCode
}

// openStore keeps the process serving when the database cannot be opened;
// every store call then fails with a storage error and /healthz reports 503.
func openStore(ctx context.Context, cfg config.Database, log *slog.Logger) (*sqlx.DB, formStore) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open database; form endpoints will answer with storage errors",
			"driver", cfg.Driver,
			"error", err,
		)
		return nil, store.NewUnavailable(err)
	}
	log.Info("database ready", "driver", cfg.Driver)
	return db, store.NewSQL(db)
}

func buildPublisher(ctx context.Context, cfg config.Events, log *slog.Logger) *events.KafkaPublisher {
	if !cfg.Enabled() {
		return nil
	}
	publisher, err := events.NewKafka(cfg.Brokers, cfg.Topic)
	if err != nil {
		log.Error("submission events disabled", "error", err)
		return nil
	}
	if err := publisher.EnsureTopic(ctx); err != nil {
		log.Warn("failed to ensure events topic", "topic", cfg.Topic, "error", err)
	}
	log.Info("submission events enabled", "topic", cfg.Topic)
	return publisher
}

func buildRedis(ctx context.Context, cfg config.RateLimit, log *slog.Logger) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	client, err := redis.New(ctx, cfg)
	if err != nil {
		log.Error("redis unavailable; rate limit counters stay in memory", "error", err)
		return nil
	}
	return client
}
