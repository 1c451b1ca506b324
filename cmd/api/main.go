package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	cartcache "github.com/SouravDn-p/mobile-canvas-api/internal/cart/adapters/cache"
	carthttp "github.com/SouravDn-p/mobile-canvas-api/internal/cart/adapters/http"
	cartmongo "github.com/SouravDn-p/mobile-canvas-api/internal/cart/adapters/mongo"
	cartapp "github.com/SouravDn-p/mobile-canvas-api/internal/cart/app"
	cartports "github.com/SouravDn-p/mobile-canvas-api/internal/cart/ports"
	"github.com/SouravDn-p/mobile-canvas-api/internal/config"
	"github.com/SouravDn-p/mobile-canvas-api/internal/database"
	"github.com/SouravDn-p/mobile-canvas-api/internal/events"
	idempostgres "github.com/SouravDn-p/mobile-canvas-api/internal/idempotency/postgres"
	"github.com/SouravDn-p/mobile-canvas-api/internal/mongodb"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/adapters"
	ordershttp "github.com/SouravDn-p/mobile-canvas-api/internal/orders/adapters/http"
	orderspostgres "github.com/SouravDn-p/mobile-canvas-api/internal/orders/adapters/postgres"
	ordersapp "github.com/SouravDn-p/mobile-canvas-api/internal/orders/app"
	ordersmetrics "github.com/SouravDn-p/mobile-canvas-api/internal/orders/metrics"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
	"github.com/SouravDn-p/mobile-canvas-api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTelEndpoint != "" {
		tel, err := telemetry.Initialize(ctx, telemetry.Config{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Environment:    cfg.Service.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
			EnableTracing:  cfg.Telemetry.EnableTracing,
			EnableMetrics:  cfg.Telemetry.EnableMetrics,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			logger.Error("failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	meter := otel.Meter(cfg.Service.Name)

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed successfully")
	}

	mongoDB, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoDB.Client().Disconnect(disconnectCtx)
	}()

	cartStore := cartmongo.NewStore(mongoDB)
	if err := cartStore.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to create mongodb indexes", "error", err)
		os.Exit(1)
	}

	var cache cartports.CartCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cart cache disabled", "addr", cfg.Redis.Addr, "error", err)
	} else {
		cache = cartcache.NewRedisCache(redisClient)
	}
	defer redisClient.Close()

	var eventBus ports.EventBus = events.NewNoopEventBus()
	if cfg.RabbitMQ.URL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		publisher, err := events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Error("failed to create rabbitmq publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		eventBus = publisher
	}

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	eventMetrics, err := events.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create event metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := ordershttp.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	repo := adapters.NewObservableRepository(orderspostgres.NewRepository(pool), dbMetrics)
	observableBus := adapters.NewObservableEventBus(eventBus, eventMetrics)
	idemStore := idempostgres.NewStore(pool)

	cartService := cartapp.NewService(cartStore, cache, logger)
	ordersService := ordersapp.NewService(repo, observableBus, idemStore, ordersapp.Pricing{
		ShippingFee: cfg.Pricing.ShippingFee,
		TaxRate:     cfg.Pricing.TaxRate,
	}, logger, orderMetrics)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		if err := mongoDB.Client().Ping(r.Context(), nil); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		// Metrics are pushed over OTLP; this endpoint exists for probe parity.
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	})

	carthttp.NewHandler(cartService).Register(mux)
	ordershttp.NewHandler(ordersService, cartService).Register(mux)

	handler := ordershttp.WithRecovery(
		ordershttp.WithLogging(
			ordershttp.WithMetrics(mux, httpMetrics),
			logger,
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
