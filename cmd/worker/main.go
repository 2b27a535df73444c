package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/adapters/event"
	"github.com/khoahotran/hireboard/adapters/media_storage"
	"github.com/khoahotran/hireboard/adapters/persistence"
	companyUC "github.com/khoahotran/hireboard/internal/application/usecase/company"
	"github.com/khoahotran/hireboard/internal/config"
	"github.com/khoahotran/hireboard/pkg/logger"
	"github.com/khoahotran/hireboard/pkg/tracing"
)

const (
	serviceName     = "hireboard-worker"
	consumerGroupID = "company-logo-processor-group"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel).With(zap.String("service", serviceName))
	defer appLogger.Sync()
	appLogger.Info("Starting hireboard worker")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Warn("Tracing unavailable, continuing without it", zap.Error(err))
	}
	defer tracing.Shutdown(tp, appLogger)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var redisClient *redis.Client
	if rdb, err := persistence.NewRedisClient(cfg, appLogger); err != nil {
		appLogger.Warn("Redis unavailable, cache invalidation skipped", zap.Error(err))
	} else {
		redisClient = rdb
		defer redisClient.Close()
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Repositories
	companyRepo := persistence.NewPostgresCompanyRepo(dbPool, appLogger)
	companyCache := persistence.NewRedisCompanyCache(redisClient, cfg.Cache.CompanyListTTL, appLogger)

	// Worker Use Case
	processLogoUC := companyUC.NewProcessLogoEventUseCase(companyRepo, companyCache, uploader, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicCompanyEvents,
		GroupID:  consumerGroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicCompanyEvents), zap.String("group_id", consumerGroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopping")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		if err := handleMessage(ctx, msg, processLogoUC.Execute, consumer.CommitMessages, defaultRetry, appLogger); err != nil {
			appLogger.Info("Worker stopping, message left uncommitted", zap.Int64("offset", msg.Offset))
			return
		}
	}
}
