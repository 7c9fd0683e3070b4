package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/workplan/backend/api/handler"
	"github.com/workplan/backend/internal/config"
	"github.com/workplan/backend/internal/infrastructure/buffer"
	"github.com/workplan/backend/internal/infrastructure/monitor"
	pgInfra "github.com/workplan/backend/internal/infrastructure/postgres"
	redisInfra "github.com/workplan/backend/internal/infrastructure/redis"
	"github.com/workplan/backend/internal/middleware"
	"github.com/workplan/backend/internal/router"
	"github.com/workplan/backend/internal/services"
	"github.com/workplan/backend/internal/services/lifecycle"
	"github.com/workplan/backend/pkg/httpcontext"
	"github.com/workplan/backend/pkg/logger"
	"github.com/workplan/backend/repository/postgres"
	redisRepo "github.com/workplan/backend/repository/redis"
	commentUC "github.com/workplan/backend/usecase/comment"
	dashboardUC "github.com/workplan/backend/usecase/dashboard"
	taskUC "github.com/workplan/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, cfg.Reports.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	reportCache := redisRepo.NewReportCache(redisClient, cfg.Reports.CacheTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		commentRepo,
		userRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	taskUseCase := taskUC.New(taskRepo, bufferBridge, zapLogger)
	commentUseCase := commentUC.New(commentRepo, bufferBridge, zapLogger)
	dashboardUseCase := dashboardUC.New(taskRepo, userRepo, reportCache, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Comment:   apiHandler.NewCommentHandler(commentUseCase, ctxAdapter, zapLogger),
		Calendar:  apiHandler.NewCalendarHandler(taskUseCase, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, zapLogger),
		User:      apiHandler.NewUserHandler(userRepo, bufferBridge, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
