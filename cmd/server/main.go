package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/interface/cache"
	"flightwatch-service/internal/interface/provider"
	"flightwatch-service/internal/interface/publisher"
	ifaceRepo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appMetrics := metrics.NewMetrics("flightwatch")

	// Set up MongoDB connection for snapshot history
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up reference-data and store repositories
	airlineRepository := ifaceRepo.NewGormAirlineRepository(gormDB)
	timezoneRepository := ifaceRepo.NewGormTimezoneRepository(gormDB)
	scheduleRepository := ifaceRepo.NewGormScheduleRepository(gormDB)
	snapshotRepository := ifaceRepo.NewMongoSnapshotRepository(db)
	messengerRepository := ifaceRepo.NewHTTPMessengerRepository(cfg.MessengerBaseURL, cfg.MessengerToken, log)

	providerCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, appMetrics)

	eventPublisher, err := publisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatal("Failed to create Kafka publisher", "error", err)
	}

	flightProvider := provider.NewClient(
		cfg.ProviderBaseURL,
		cfg.ProviderAPIKey,
		cfg.ProviderRateLimit,
		cfg.ProviderBurst,
		providerCache,
		cfg.CacheTTL,
		airlineRepository,
		timezoneRepository,
		appMetrics,
		log,
	)

	reconciler := usecase.NewScheduleReconciler(scheduleRepository, log)
	monitor := usecase.NewFlightMonitor(
		flightProvider,
		snapshotRepository,
		scheduleRepository,
		messengerRepository,
		eventPublisher,
		reconciler,
		appMetrics,
		log,
	)

	// Start polling loop in a goroutine
	go func() {
		pollTicker := time.NewTicker(cfg.PollInterval)
		defer pollTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Polling loop stopped")
				return
			case <-pollTicker.C:
				now := time.Now().UTC()
				tasks, err := scheduleRepository.DueTasks(ctx, now, cfg.PollBatch)
				if err != nil {
					log.Error("Failed to load due tasks", "error", err)
					continue
				}
				if len(tasks) > 0 {
					log.Info("Processing due poll tasks", "count", len(tasks))
				}
				for _, task := range tasks {
					if err := monitor.Tick(ctx, task); err != nil {
						log.Error("Tick failed", "flightKey", task.FlightKey, "error", err)
					}
					if err := scheduleRepository.Advance(ctx, task, now); err != nil {
						log.Error("Failed to advance task", "taskId", task.ID, "error", err)
					}
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the polling loop

	if err := eventPublisher.Close(); err != nil {
		log.Error("Kafka publisher close error", "error", err)
	}
	if err := providerCache.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightwatch Service stopped")
}
