package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shashikant-75555/swaadserve-demo/internal/cache"
	"github.com/Shashikant-75555/swaadserve-demo/internal/config"
	"github.com/Shashikant-75555/swaadserve-demo/internal/database"
	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/messaging"
	"github.com/Shashikant-75555/swaadserve-demo/internal/services/dashboard"
	"github.com/Shashikant-75555/swaadserve-demo/internal/services/notification"
	"github.com/Shashikant-75555/swaadserve-demo/internal/services/order"
	"github.com/Shashikant-75555/swaadserve-demo/internal/services/tracking"
)

func main() {
	var (
		mode          = flag.String("mode", "", "Service mode (order-service, dashboard-service, tracking-service, notification-subscriber)")
		port          = flag.Int("port", 3000, "HTTP port")
		maxConcurrent = flag.Int("max-concurrent", 50, "Maximum concurrent checkout operations")
		prefetch      = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
		migrations    = flag.String("migrations", "migrations", "Path to SQL migrations")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		err = runOrderService(ctx, cfg, log, *port, *maxConcurrent, *migrations)
	case "dashboard-service":
		err = runDashboardService(ctx, cfg, log, *port, *prefetch)
	case "tracking-service":
		err = runTrackingService(ctx, cfg, log, *port)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService runs the guest checkout and menu service
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port, maxConcurrent int, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisCache, err := cache.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer redisCache.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	service := order.NewService(db, redisCache, publisher, log, maxConcurrent)
	handler := order.NewHandler(service, log)

	return serveHTTP(ctx, log, "order-service", port, handler.SetupRoutes())
}

// runDashboardService runs the restaurant fulfilment dashboard
func runDashboardService(ctx context.Context, cfg *config.Config, log *logger.Logger, port, prefetch int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisCache, err := cache.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer redisCache.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	publisher := messaging.NewPublisher(conn, log)
	service := dashboard.NewService(db, redisCache, publisher, log)
	handler := dashboard.NewHandler(service, log)

	// Surface newly routed orders in the dashboard log while the HTTP
	// API serves the operator actions.
	consumer := messaging.NewConsumer(conn, log, messaging.RestaurantOrdersQueue, "dashboard-service", prefetch)
	go func() {
		if err := consumer.StartConsuming(ctx, service.HandleIncomingOrder); err != nil && ctx.Err() == nil {
			log.Error("consumer_failed", "Order consumer failed", requestID, err, nil)
		}
	}()

	return serveHTTP(ctx, log, "dashboard-service", port, handler.SetupRoutes())
}

// runTrackingService runs the guest tracking and earnings service
func runTrackingService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	service := tracking.NewService(db, log)
	handler := tracking.NewHandler(service, log)

	return serveHTTP(ctx, log, "tracking-service", port, handler.SetupRoutes())
}

// runNotificationSubscriber consumes status updates and notifies guests
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	if err := subscriber.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// serveHTTP runs an HTTP server until the context is cancelled, then
// shuts it down gracefully
func serveHTTP(ctx context.Context, log *logger.Logger, service string, port int, handler http.Handler) error {
	requestID := logger.GenerateRequestID()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	go func() {
		log.Info("http_listening", fmt.Sprintf("%s listening on port %d", service, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
