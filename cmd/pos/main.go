package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cafe-pos/internal/api/http"
	"github.com/spec-kit/cafe-pos/internal/api/http/handlers"
	"github.com/spec-kit/cafe-pos/internal/auth"
	"github.com/spec-kit/cafe-pos/internal/backend"
	"github.com/spec-kit/cafe-pos/internal/cart"
	"github.com/spec-kit/cafe-pos/internal/config"
	"github.com/spec-kit/cafe-pos/internal/events"
	"github.com/spec-kit/cafe-pos/internal/observability"
	"github.com/spec-kit/cafe-pos/internal/persistence"
	"github.com/spec-kit/cafe-pos/internal/service"
	"github.com/spec-kit/cafe-pos/internal/session"
	"github.com/spec-kit/cafe-pos/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenStore := persistence.NewRedisTokenStore(redis, cfg.Session.TokenKey)
	backendClient := backend.NewClient(cfg.Backend, tokenStore, logger)

	sessions := session.NewManager(backendClient, tokenStore, logger)
	// Session restore runs concurrently with serving; the route guard holds
	// protected screens in a waiting state until it settles.
	go sessions.Initialize(ctx)

	orderCart := cart.New()
	catalogService := service.NewCatalogService(backendClient, cfg.Backend.CatalogCacheTTL())

	dispatcher := events.NewInMemoryDispatcher()
	receiptService := service.NewReceiptService(dispatcher, logger, cfg.Receipt)
	worker.StartReceiptWorker(receiptService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, backendClient),
		Session: handlers.NewSessionHandler(sessions, dispatcher),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Cart:    handlers.NewCartHandler(orderCart, catalogService, dispatcher),
		Admin:   handlers.NewAdminHandler(backendClient),
		Guard:   auth.NewGuard(sessions),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
