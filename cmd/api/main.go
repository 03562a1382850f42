package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/eventhub/internal/api/http"
	"github.com/spec-kit/eventhub/internal/api/http/handlers"
	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/observability"
	"github.com/spec-kit/eventhub/internal/persistence"
	"github.com/spec-kit/eventhub/internal/repository"
	"github.com/spec-kit/eventhub/internal/service"
	"github.com/spec-kit/eventhub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root, closeStore, err := persistence.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()
	store := persistence.Namespaced(root, cfg.Store.Namespace)

	matcher := repository.WithEmailMatcher(repository.MatcherFor(cfg.Auth.EmailMatch))
	registrationRepo := repository.NewRegistrationRepository(store, matcher)
	feedbackRepo := repository.NewFeedbackRepository(store, matcher)
	loginLogRepo := repository.NewLoginLogRepository(store)

	verifier, err := auth.NewDemoVerifier(cfg.Auth, registrationRepo)
	if err != nil {
		logger.Fatal("failed to init credential verifier", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	var forwarder *events.AMQPForwarder
	if cfg.Notification.AMQPURL != "" {
		forwarder, err = events.NewAMQPForwarder(cfg.Notification.AMQPURL, cfg.Notification.AMQPExchange, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events stay in-process", zap.Error(err))
			forwarder = nil
		} else {
			defer forwarder.Close() //nolint:errcheck
		}
	}
	worker.StartNotificationWorker(dispatcher, notificationService, forwarder)

	portalService := service.NewPortalService(service.PortalDependencies{
		RegistrationRepo: registrationRepo,
		FeedbackRepo:     feedbackRepo,
		LoginLogRepo:     loginLogRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
		Event:            cfg.Event,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		RegistrationRepo: registrationRepo,
		LoginLogRepo:     loginLogRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
		DemoOTP:          cfg.Auth.DemoOTP,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		RegistrationRepo: registrationRepo,
		FeedbackRepo:     feedbackRepo,
		LoginLogRepo:     loginLogRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	registrationService := service.NewRegistrationService(registrationRepo, dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.ClientTokenSecret, cfg.Auth.ClientTokenTTL())
	clientMiddleware := auth.NewClientMiddleware(tokens, store, verifier, cfg.Auth.CookieSecure, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Backend, root),
		Metrics: handlers.NewMetricsHandler(metrics),
		Public:  handlers.NewPublicHandler(portalService, registrationService),
		Auth:    handlers.NewAuthHandler(authService),
		Portal:  handlers.NewPortalHandler(portalService),
		Admin:   handlers.NewAdminHandler(adminService),
		Client:  clientMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
