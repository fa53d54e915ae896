package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/config"
	"workshop-bridge/internal/database"
	"workshop-bridge/internal/handler"
	"workshop-bridge/internal/metrics"
	"workshop-bridge/internal/router"
	"workshop-bridge/internal/service"
	"workshop-bridge/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting workshop-bridge API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Two connection pools: the anon role for regular traffic, the
	// service role for admin routes and privileged lookups.
	anonPool, err := database.NewPool(ctx, cfg.Database.AnonConnectionString(), cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize anon database pool: %w", err)
	}
	defer anonPool.Close()

	adminPool, err := database.NewPool(ctx, cfg.Database.ServiceConnectionString(), cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service-role database pool: %w", err)
	}
	defer adminPool.Close()

	// Initialize stores and the auth platform client
	handles := store.NewHandles(anonPool, adminPool, logger)
	provider := auth.NewHTTPProvider(cfg.Auth, logger)

	// Initialize services and metrics
	couponService := service.NewCouponService(handles.Anon.Coupons, logger)
	m := metrics.New()

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(provider, handles.Admin.PendingUsers, logger),
		Coupon:      handler.NewCouponHandler(couponService, m, logger),
		User:        handler.NewUserHandler(handles.Anon.Users, handles.Admin.Users, handles.Admin.PendingUsers, logger),
		PendingUser: handler.NewPendingUserHandler(handles.Admin.PendingUsers, logger),
		Workshop:    handler.NewWorkshopHandler(handles.Anon.Workshops, logger),
		Event:       handler.NewEventHandler(handles.Anon.Events, logger),
		Order:       handler.NewOrderHandler(handles.Anon.Orders, logger),
		Testimonial: handler.NewTestimonialHandler(handles.Anon.Testimonials, handles.Admin.Users, logger),
	}

	// Initialize router
	mux := router.New(handlers, provider, handles, m, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
