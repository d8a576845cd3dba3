package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"bethouse/api"
	"bethouse/cache"
	"bethouse/config"
	"bethouse/database"
	"bethouse/repository"
	"bethouse/service"
	"bethouse/worker"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting bethouse analytics engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize repositories
	betRepo := repository.NewBetRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize services
	log.Println("Initializing services...")
	revenueService := service.NewRevenueService(betRepo, txRepo)
	trendService := service.NewTrendService(betRepo, txRepo)
	playerMetricsService := service.NewPlayerMetricsService(userRepo, betRepo, txRepo)
	ltvService := service.NewLTVService(betRepo, txRepo)
	churnService := service.NewChurnService(userRepo, betRepo)
	retentionService := service.NewRetentionService(userRepo, betRepo)
	tenantRevenueService := service.NewTenantRevenueService(tenantRepo, betRepo, txRepo)
	snapshotService := service.NewSnapshotService(
		revenueService,
		trendService,
		playerMetricsService,
		churnService,
		retentionService,
		tenantRevenueService,
		snapshotRepo,
	)
	log.Println("Services initialized successfully")

	// An empty REDIS_ADDR disables report caching
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Println("Redis connection established successfully")
	}
	reportCache := cache.NewReportCache(redisClient)

	// Initialize API server
	server := api.NewServer(
		revenueService,
		trendService,
		playerMetricsService,
		ltvService,
		churnService,
		retentionService,
		tenantRevenueService,
		snapshotService,
		snapshotRepo,
		reportCache,
	)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Start the snapshot worker
	snapshotWorker := worker.NewSnapshotWorker(snapshotService)
	stopWorker := snapshotWorker.Start(ctx, cfg.SnapshotHour)

	log.Printf("Engine is running in %s mode...", cfg.Environment)
	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down...")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
