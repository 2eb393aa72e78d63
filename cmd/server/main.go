package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/config"
	"goldenPalmDash/internal/modules/dashboard/application/handler"
	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/infrastructure"
	transport "goldenPalmDash/internal/modules/dashboard/interface"
	"goldenPalmDash/internal/platform/broker"
	"goldenPalmDash/internal/platform/ratelimit"
	"goldenPalmDash/internal/shared/auth"
	"goldenPalmDash/internal/shared/logging"
)

// Backend entity events that may trigger a panel refresh.
var streamActions = []string{"created", "updated", "deleted", "status_changed", "approved", "rejected", "cancelled", "refunded"}

func main() {
	// Load .env when present so local runs pick up overrides.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, writer, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("backend configured", slog.String("baseUrl", cfg.REST.BaseURL), slog.Duration("timeout", cfg.REST.Timeout))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	backend := infrastructure.NewBackendClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	pageCache := infrastructure.NewPageStateCache(infrastructure.PageStateCacheConfig{
		MemcachedHosts: cfg.Cache.MemcachedHosts,
		LocalMaxSize:   cfg.Cache.LocalMaxSize,
		LocalTTL:       cfg.Cache.LocalTTL,
		RemoteTTL:      cfg.Cache.RemoteTTL,
	})
	defer pageCache.Stop()

	var audit port.AuditPublisher = infrastructure.LogAuditPublisher{}
	if cfg.AMQP.URL != "" {
		amqpAudit := infrastructure.NewAMQPAuditPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		defer amqpAudit.Close()
		audit = amqpAudit
		slog.Info("audit publisher: amqp", slog.String("queue", cfg.AMQP.Queue))
	}

	// Use cases
	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if !validator.Configured() {
		slog.Warn("jwt validation disabled: no secret or public key configured")
	}
	catalog := usecase.NewCatalog().WithLoginPath(cfg.Server.LoginPath)
	guard := usecase.NewSessionGuard(validator)
	notices := usecase.NewNoticeBoard(cfg.Notices.TTL, hub)
	pages := usecase.NewPageStates(pageCache)
	dispatcher := usecase.NewActionDispatcher(backend, notices, pages, audit)
	dashboards := usecase.NewDashboardUseCase(catalog, guard, backend, pages, notices, dispatcher)
	bookings := usecase.NewBookingUseCase(guard, catalog.BookingPolicy(), backend, notices)
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	live := usecase.NewLiveRefresh(catalog, backend, pages, broadcastUC)

	// One handler per Kafka topic.
	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(handler.NewEntityStreamHandler(entity, topic, streamActions, broadcastUC, live))
		}
	}
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())

	// A typed nil client must not reach NewTokenBucket.
	var limiter echo.MiddlewareFunc
	if rdb := ratelimit.NewRedisClient(ctx, cfg.Redis); rdb != nil {
		defer rdb.Close()
		limiter = ratelimit.NewTokenBucket(cfg.RateLimit, rdb)
	} else {
		slog.Warn("rate limiting disabled: redis unavailable", slog.String("addr", cfg.Redis.Addr))
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(writer)

	transport.RegisterRoutes(e, transport.Routes{
		Dashboards: dashboards,
		Bookings:   bookings,
		Live:       live,
		Hub:        hub,
		SendBuffer: cfg.Websocket.SendBuffer,
		RateLimit:  limiter,
		Events:     registry,
		EventsKey:  cfg.Security.EventsKey,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down", slog.Int("clients", hub.Clients()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
}

func setupLogging(cfg config.LoggingConfig) (*os.File, io.Writer, error) {
	file, err := logging.OpenDaily(cfg.Directory, time.Now())
	if err != nil {
		return nil, nil, err
	}

	writer := io.MultiWriter(os.Stdout, file)
	slog.SetDefault(logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	}))
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, writer, nil
}
