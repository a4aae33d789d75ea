package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"bioportal/internal/adapters/backend"
	http_handler "bioportal/internal/adapters/handler/http"
	"bioportal/internal/adapters/handler/mqtt"
	redis_adapter "bioportal/internal/adapters/queue/redis"
	"bioportal/internal/adapters/session"
	"bioportal/internal/config"
	"bioportal/internal/core/logger"
	"bioportal/internal/core/ports"
	"bioportal/internal/core/services"
	"bioportal/internal/core/tracing"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting bioinformatics portal", "version", version, "auth", cfg.AuthEnabled(), "backend", cfg.DefaultBackend)

	if cfg.EnableTracing {
		shutdownTracing, err := tracing.Init(cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			logger.Error("Failed to initialize tracing", "error", err)
		} else {
			logger.Info("Tracing initialized", "endpoint", cfg.OTLPEndpoint)
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					logger.Error("Failed to shutdown tracing", "error", err)
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := http_handler.NewHub()
	go hub.Run(ctx)

	var (
		store    ports.SessionStore
		critical []ports.HealthChecker
		optional []ports.HealthChecker
		progress []ports.ProgressPublisher
	)

	switch cfg.SessionBackend {
	case "redis":
		client, err := session.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to init redis: %v", err)
		}
		defer client.Close()

		redisStore := session.NewRedisStore(client)
		store = redisStore
		critical = append(critical, redisStore)

		// Progress goes through redis so every instance's websocket clients
		// see batches run elsewhere.
		relay := redis_adapter.NewProgressRelay(client)
		events, err := relay.Subscribe(ctx, "")
		if err != nil {
			log.Fatalf("failed to subscribe to progress relay: %v", err)
		}
		go hub.Consume(ctx, events)
		progress = append(progress, relay)
	default:
		memStore := session.NewMemoryStore(time.Minute)
		defer memStore.Close()
		store = memStore
		progress = append(progress, hub)
	}

	if cfg.MQTTBroker != "" {
		publisher, err := mqtt.NewPublisher(cfg.MQTTBroker, cfg.MQTTPrefix)
		if err != nil {
			logger.Error("Failed to init MQTT publisher", "error", err, "broker", cfg.MQTTBroker)
		} else {
			defer publisher.Close()
			progress = append(progress, publisher)
			optional = append(optional, publisher)
			logger.Info("MQTT publisher started", "broker", cfg.MQTTBroker)
		}
	}

	registry := backend.NewRegistry(
		backend.NewStub(),
		backend.NewCLI(cfg.CLIBinary, cfg.CLIOutDir),
		backend.NewAPI(cfg.APIURL, cfg.APIKey),
	)
	designService := services.NewDesignService(registry, cfg.DefaultBackend, backend.NameCLI, backend.NameAPI)
	if _, err := registry.Get(cfg.DefaultBackend); err != nil {
		log.Fatalf("invalid default backend: %v", err)
	}

	sessions := services.NewSessionService(store, cfg.SessionTTL)

	httpServer := http_handler.NewServer(http_handler.Deps{
		Design:         designService,
		Batch:          services.NewBatchService(),
		Tools:          services.NewToolService(),
		Sessions:       sessions,
		Auth:           services.NewAuthService(cfg.Password, sessions, cfg.LoginAttemptsPerMinute),
		Health:         services.NewHealthService(version, critical, optional...),
		Progress:       services.NewProgressFanout(progress...),
		Hub:            hub,
		MaxUploadBytes: cfg.MaxUploadBytes,
		EnableMetrics:  cfg.EnableMetrics,
		SecureCookies:  cfg.SecureCookies,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP Server starting", "port", cfg.HTTPPort)
		errCh <- httpServer.Run(":" + cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed", "error", err)
		}
	}
}
