package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Arshadkhan96/Market-Max/internal/auth"
	"github.com/Arshadkhan96/Market-Max/internal/cache"
	"github.com/Arshadkhan96/Market-Max/internal/config"
	"github.com/Arshadkhan96/Market-Max/internal/events"
	h "github.com/Arshadkhan96/Market-Max/internal/http"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
	"github.com/Arshadkhan96/Market-Max/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("mongodb disconnect failed", "error", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	cartRepo := repository.NewMongoCartRepository(db)
	checkoutRepo := repository.NewMongoCheckoutRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	finalizer := repository.NewMongoFinalizer(client, db)

	if err := repository.EnsureIndexes(connectCtx, cartRepo, checkoutRepo, orderRepo, productRepo, userRepo); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	var publisher service.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 256)
		producer.Start(ctx)
		defer func() { <-producer.Done() }()
		publisher = producer
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	cartCache := cache.NewRedisCache(redisClient)

	cartSvc := service.NewCartService(cartRepo, productRepo, cartCache)
	checkoutSvc := service.NewCheckoutService(checkoutRepo, productRepo)
	finalizeSvc := service.NewFinalizeService(checkoutRepo, productRepo, finalizer, publisher)
	orderSvc := service.NewOrderService(orderRepo)

	router := h.NewRouter(h.RouterDeps{
		Cart:     h.NewCartHandler(cartSvc),
		Checkout: h.NewCheckoutHandler(checkoutSvc, finalizeSvc),
		Orders:   h.NewOrdersHandler(orderSvc),
		Products: h.NewProductHandler(productRepo),
		Users:    h.NewUserHandler(userRepo, tokens),
		Tokens:   tokens,
		Timeout:  cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront API starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}
