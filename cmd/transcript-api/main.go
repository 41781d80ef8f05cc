package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-transcript-api/api/swagger"
	"github.com/noah-isme/sma-transcript-api/internal/handler"
	"github.com/noah-isme/sma-transcript-api/internal/middleware"
	"github.com/noah-isme/sma-transcript-api/internal/repository"
	"github.com/noah-isme/sma-transcript-api/internal/service"
	"github.com/noah-isme/sma-transcript-api/pkg/cache"
	"github.com/noah-isme/sma-transcript-api/pkg/config"
	"github.com/noah-isme/sma-transcript-api/pkg/database"
	"github.com/noah-isme/sma-transcript-api/pkg/export"
	"github.com/noah-isme/sma-transcript-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-transcript-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-transcript-api/pkg/middleware/requestid"
)

// @title Transcript API
// @version 1.0.0
// @description Academic transcript generation for enrolled students
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var cacheRepo service.CacheRepository
	if cfg.Transcript.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, transcript cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Transcript.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()
	authSvc, err := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:         cfg.JWT.Secret,
		SecretEncoding: cfg.JWT.SecretEncoding,
		Leeway:         cfg.JWT.Leeway,
	})
	if err != nil {
		logr.Fatal("invalid jwt configuration", zap.Error(err))
	}

	transcriptRepo := repository.NewTranscriptRepository(db, metrics)
	identityRepo := repository.NewIdentityRepository(db, metrics)

	gradeScaleSvc := service.NewGradeScaleService(cfg.Transcript.GradeScalePath, validate, logr)
	renderer := service.NewTranscriptRenderer(
		export.NewPDFExporter(export.PDFOptions{Compress: cfg.Transcript.CompressPDF, Author: "Transcript API"}),
		export.NewCSVExporter(),
	)
	transcriptSvc := service.NewTranscriptService(transcriptRepo, gradeScaleSvc, renderer, cacheSvc, metrics, logr, cfg.Transcript.CacheTTL)
	identitySvc := service.NewIdentityService(identityRepo, logr)

	transcriptHandler := handler.NewTranscriptHandler(identitySvc, transcriptSvc, gradeScaleSvc, cfg.Transcript.Filename)
	healthHandler := handler.NewHealthHandler(db, metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics, "/metrics"))
	}

	handler.RegisterHealthRoutes(r, healthHandler, metrics != nil)
	handler.RegisterTranscriptRoutes(r.Group(cfg.APIPrefix), authSvc, transcriptHandler)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "db_driver", cfg.Database.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
}
