package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/adapters/event"
	httpAdapter "github.com/khoahotran/hireboard/adapters/http"
	"github.com/khoahotran/hireboard/adapters/media_storage"
	"github.com/khoahotran/hireboard/adapters/persistence"
	"github.com/khoahotran/hireboard/internal/application/service"
	authUC "github.com/khoahotran/hireboard/internal/application/usecase/auth"
	companyUC "github.com/khoahotran/hireboard/internal/application/usecase/company"
	experienceUC "github.com/khoahotran/hireboard/internal/application/usecase/experience"
	healthUC "github.com/khoahotran/hireboard/internal/application/usecase/health"
	jobUC "github.com/khoahotran/hireboard/internal/application/usecase/job"
	skillUC "github.com/khoahotran/hireboard/internal/application/usecase/skill"
	"github.com/khoahotran/hireboard/internal/config"
	"github.com/khoahotran/hireboard/pkg/auth"
	"github.com/khoahotran/hireboard/pkg/logger"
	"github.com/khoahotran/hireboard/pkg/tracing"
)

const serviceName = "hireboard-api"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel).With(zap.String("service", serviceName))
	defer appLogger.Sync()
	appLogger.Info("Starting hireboard API server", zap.String("env", cfg.App.Env))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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

	// Redis is optional: without it the company cache is bypassed
	var redisClient *redis.Client
	if rdb, err := persistence.NewRedisClient(cfg, appLogger); err != nil {
		appLogger.Warn("Redis unavailable, company list cache disabled", zap.Error(err))
	} else {
		redisClient = rdb
		defer redisClient.Close()
	}

	var publisher event.CompanyEventPublisher
	if kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger); err != nil {
		appLogger.Warn("Kafka unavailable, company events will not be published", zap.Error(err))
	} else {
		publisher = kafkaClient
		defer kafkaClient.Close()
	}

	var uploader service.Uploader
	if u, err := media_storage.NewCloudinaryAdapter(cfg, appLogger); err != nil {
		appLogger.Warn("Cloudinary unavailable, logo uploads disabled", zap.Error(err))
	} else {
		uploader = u
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	companyRepo := persistence.NewPostgresCompanyRepo(dbPool, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	jobRepo := persistence.NewPostgresJobRepo(dbPool, appLogger)
	companyCache := persistence.NewRedisCompanyCache(redisClient, cfg.Cache.CompanyListTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	registerUseCase := authUC.NewRegisterUseCase(userRepo, appLogger)
	createCompanyUseCase := companyUC.NewCreateCompanyUseCase(companyRepo, companyCache, appLogger)
	listCompaniesUseCase := companyUC.NewListCompaniesUseCase(companyRepo, companyCache, appLogger)
	getCompanyUseCase := companyUC.NewGetCompanyUseCase(companyRepo)
	uploadLogoUseCase := companyUC.NewUploadLogoUseCase(companyRepo, companyCache, uploader, publisher, appLogger)
	updateExperiencesUseCase := experienceUC.NewUpdateExperiencesUseCase(experienceRepo, appLogger)
	listExperiencesUseCase := experienceUC.NewListExperiencesUseCase(experienceRepo)
	checkDBUseCase := healthUC.NewCheckDBUseCase(dbPool, userRepo)
	createJobUseCase := jobUC.NewCreateJobUseCase(jobRepo, skillRepo, appLogger)
	listPublicJobsUseCase := jobUC.NewListPublicJobsUseCase(jobRepo, appLogger)
	getPublicJobUseCase := jobUC.NewGetPublicJobUseCase(jobRepo, skillRepo, appLogger)
	listSkillsUseCase := skillUC.NewListSkillsUseCase(skillRepo)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(loginUseCase, registerUseCase, appLogger),
		Company: httpAdapter.NewCompanyHandler(
			createCompanyUseCase,
			listCompaniesUseCase,
			getCompanyUseCase,
			uploadLogoUseCase,
			appLogger,
		),
		Experience: httpAdapter.NewExperienceHandler(updateExperiencesUseCase, listExperiencesUseCase),
		Health:     httpAdapter.NewHealthHandler(checkDBUseCase, appLogger),
		Job:        httpAdapter.NewJobHandler(createJobUseCase, listPublicJobsUseCase, getPublicJobUseCase, appLogger),
		Skill:      httpAdapter.NewSkillHandler(listSkillsUseCase),
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.App.RequestTimeout,
	}, handlers, jwtSvc, appLogger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		errChan <- httpServer.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server stopped unexpectedly", err)
		}
	case sig := <-sigChan:
		appLogger.Info("Shutting down server", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			appLogger.Error("Server shutdown failed", err)
		}
	}
}
