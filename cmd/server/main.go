package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	customerapp "github.com/banking/backend/internal/application/customer"
	eventapp "github.com/banking/backend/internal/application/event"
	ledgerapp "github.com/banking/backend/internal/application/ledger"
	"github.com/banking/backend/internal/infrastructure/cache"
	"github.com/banking/backend/internal/infrastructure/config"
	"github.com/banking/backend/internal/infrastructure/event"
	"github.com/banking/backend/internal/infrastructure/logger"
	"github.com/banking/backend/internal/infrastructure/messaging"
	"github.com/banking/backend/internal/infrastructure/persistence"
	"github.com/banking/backend/internal/interfaces/http/handler"
	"github.com/banking/backend/internal/interfaces/http/middleware"
	"github.com/banking/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting banking ledger service",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	// Redis carries the event streams and idempotency keys
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		_ = redisClient.Close()
	}()

	// Event serialization and the transactional outbox
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	outboxSaver := event.NewOutboxPublisher(serializer)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	accountRepo.SetOutboxEventSaver(outboxSaver)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	projectionRepo := persistence.NewGormCustomerProjectionRepository(db.DB)

	// Application services
	accountService := ledgerapp.NewAccountService(accountRepo, projectionRepo)
	transactionService := ledgerapp.NewTransactionService(accountRepo, transactionRepo)
	statementService := ledgerapp.NewStatementService(accountRepo, transactionRepo)
	projectionService := customerapp.NewProjectionService(projectionRepo, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Outbox relay: polls committed events and publishes them to the streams
	streamPublisher := messaging.NewRedisStreamPublisher(redisClient, log)
	processorConfig := event.DefaultOutboxProcessorConfig()
	if cfg.Event.BatchSize > 0 {
		processorConfig.BatchSize = cfg.Event.BatchSize
	}
	if cfg.Event.PollInterval > 0 {
		processorConfig.PollInterval = cfg.Event.PollInterval
	}
	processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
	if cfg.Event.CleanupRetention > 0 {
		processorConfig.CleanupRetention = cfg.Event.CleanupRetention
	}
	processor := event.NewOutboxProcessor(outboxRepo, streamPublisher, serializer, processorConfig, log)
	if cfg.Event.ProcessorEnabled {
		if err := processor.Start(rootCtx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
	}

	// Customer event consumer: projects customer events into the read model
	var consumer *messaging.RedisStreamConsumer
	if cfg.Consumer.Enabled {
		storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
		idempotencyStore, err := storeFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}

		dispatcher := messaging.NewCustomerEventDispatcher(projectionService)
		consumer = messaging.NewRedisStreamConsumer(redisClient, cfg.Consumer, dispatcher, idempotencyStore, log)
		if err := consumer.Start(rootCtx); err != nil {
			log.Fatal("Failed to start customer event consumer", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())

	engine.GET("/health", handler.NewSystemHandler(db).Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAccountHandler(accountService))
	r.Register(handler.NewTransactionHandler(transactionService, statementService))
	r.Register(handler.NewCustomerHandler(projectionService))
	r.Register(handler.NewOutboxHandler(outboxService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if consumer != nil {
		if err := consumer.Stop(shutdownCtx); err != nil {
			log.Warn("Consumer did not stop cleanly", zap.Error(err))
		}
	}
	if cfg.Event.ProcessorEnabled {
		if err := processor.Stop(shutdownCtx); err != nil {
			log.Warn("Outbox processor did not stop cleanly", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
