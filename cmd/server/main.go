package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/noraraghay/central-catalunya/internal/config"
	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/handlers"
	"github.com/noraraghay/central-catalunya/internal/router"
	"github.com/noraraghay/central-catalunya/internal/service"
	"github.com/noraraghay/central-catalunya/internal/websocket"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	// Pick the store. Without DATABASE_URL the server runs entirely
	// in memory, which is enough for local development.
	var store service.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to create connection pool")
		}
		defer pool.Close()

		repo := database.NewRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.WithError(err).Fatal("failed to initialize schema")
		}
		store = repo
		logger.Info("connected to Postgres")
	} else {
		store = database.NewMemoryStore()
		logger.Warn("DATABASE_URL not set, running with in-memory store")
	}

	// WebSocket hub for live availability updates
	hub := websocket.NewHub(logger)
	go hub.Run()

	// Initialize services
	fieldService := service.NewFieldService(store)
	bookingService := service.NewBookingService(store)
	stockService := service.NewStockService(store)
	orderService := service.NewOrderService(store, logger)
	memberService := service.NewMemberService(store)
	paymentService := service.NewPaymentService(store)

	// Initialize handlers and router
	h := handlers.NewHandler(fieldService, bookingService, stockService,
		orderService, memberService, paymentService, hub, logger)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.WithField("port", cfg.APIPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}

	logger.Info("server stopped")
}
