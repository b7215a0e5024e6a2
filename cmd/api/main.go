package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/antojo-app/backend/api/routes"
	cartengine "github.com/antojo-app/backend/internal/cart"
	"github.com/antojo-app/backend/internal/catalog"
	checkoutsvc "github.com/antojo-app/backend/internal/checkout"
	ordersvc "github.com/antojo-app/backend/internal/orders"
	"github.com/antojo-app/backend/internal/realtime"
	usersvc "github.com/antojo-app/backend/internal/users"
	"github.com/antojo-app/backend/pkg/config"
	"github.com/antojo-app/backend/pkg/db"
	"github.com/antojo-app/backend/pkg/logger"
	"github.com/antojo-app/backend/pkg/migrate"
	"github.com/antojo-app/backend/pkg/outbox"
	"github.com/antojo-app/backend/pkg/outbox/idempotency"
	"github.com/antojo-app/backend/pkg/pubsub"
	"github.com/antojo-app/backend/pkg/redis"
)

const (
	shutdownTimeout = 15 * time.Second
	eventDedupeTTL  = 24 * time.Hour
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}

	cartStorage, err := cartengine.NewRedisStorage(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}
	engine, err := cartengine.NewEngine(cartStorage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart engine", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	ordersRepo := ordersvc.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	ordersService, err := ordersvc.NewService(dbClient, ordersRepo, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(dbClient, engine, ordersRepo, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	usersService, err := usersvc.NewService(usersvc.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	hub := realtime.NewHub()

	dedupeManager, err := idempotency.NewManager(redisClient, eventDedupeTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create event dedupe manager", err)
		os.Exit(1)
	}
	consumer, err := realtime.NewConsumer(hub, dedupeManager, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create realtime consumer", err)
		os.Exit(1)
	}
	consumerService, err := realtime.NewService(pubsubClient.OrdersSubscription(), consumer, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create realtime service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- consumerService.Run(ctx)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Catalog:  catalogService,
			Cart:     engine,
			Checkout: checkoutService,
			Orders:   ordersService,
			Users:    usersService,
			Hub:      hub,
		}),
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.ListenAndServe()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if err := <-consumerDone; err != nil && !errors.Is(err, context.Canceled) {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if err := pubsubClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if err := redisClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if err := dbClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}

	if shutdownErr != nil {
		logg.Error(logCtx, "shutdown finished with errors", shutdownErr)
		os.Exit(1)
	}
	logg.Info(logCtx, "api server shut down cleanly")
}
