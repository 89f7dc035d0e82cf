package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/orderhub/backend/internal/application/catalog"
	identityapp "github.com/orderhub/backend/internal/application/identity"
	importerapp "github.com/orderhub/backend/internal/application/importer"
	partnerapp "github.com/orderhub/backend/internal/application/partner"
	tradeapp "github.com/orderhub/backend/internal/application/trade"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/event"
	"github.com/orderhub/backend/internal/infrastructure/jobs"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/infrastructure/notification"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/infrastructure/pricelist"
	"github.com/orderhub/backend/internal/infrastructure/scheduler"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
	"github.com/orderhub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OrderHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	confirmTokenRepo := persistence.NewGormConfirmEmailTokenRepository(db.DB)
	resetTokenRepo := persistence.NewGormPasswordResetTokenRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	importRepo := persistence.NewGormImportRepository(db.DB)
	importHistoryRepo := persistence.NewGormImportHistoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)

	// Token blacklist: Redis when configured, in-process otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token blacklist is in-memory, revoked tokens reset on restart")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Background job queue
	queue := jobs.NewQueue(jobs.QueueConfig{
		Workers:   cfg.Jobs.Workers,
		QueueSize: cfg.Jobs.QueueSize,
	}, log)
	if err := queue.Start(context.Background()); err != nil {
		log.Fatal("Failed to start job queue", zap.Error(err))
	}
	defer func() {
		if err := queue.Stop(context.Background()); err != nil {
			log.Error("Error stopping job queue", zap.Error(err))
		}
	}()
	log.Info("Job queue started", zap.Int("workers", cfg.Jobs.Workers))

	// Outgoing email
	var mailer notification.Mailer
	if cfg.SMTP.Enabled {
		mailer = notification.NewSMTPMailer(cfg.SMTP)
		log.Info("SMTP mailer configured",
			zap.String("host", cfg.SMTP.Host),
			zap.Int("port", cfg.SMTP.Port),
		)
	} else {
		mailer = notification.NewLogMailer(log)
	}
	emailHandler := notification.NewEmailHandler(mailer, queue, userRepo, confirmTokenRepo, log)
	eventBus.Subscribe(emailHandler)
	log.Info("Email notifications registered", zap.Strings("event_types", emailHandler.EventTypes()))

	// Periodic expired-token cleanup
	if cfg.Cron.Enabled {
		sched := scheduler.New(confirmTokenRepo, resetTokenRepo, log)
		if err := sched.RegisterTokenCleanup(cfg.Cron.TokenCleanupSchedule); err != nil {
			log.Fatal("Failed to register token cleanup", zap.Error(err))
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Token cleanup scheduled", zap.String("schedule", cfg.Cron.TokenCleanupSchedule))
	}

	// Application services
	accountService := identityapp.NewAccountService(
		userRepo, confirmTokenRepo, resetTokenRepo, jwtService, blacklist, eventBus, log,
	)
	catalogService := catalogapp.NewCatalogService(categoryRepo, shopRepo, listingRepo, log)
	fetcher := pricelist.NewFetcher(pricelist.FetcherConfig{
		Timeout:     cfg.Import.FetchTimeout,
		Retries:     cfg.Import.FetchRetries,
		MaxBodySize: cfg.Import.MaxBodySize,
	}, log)
	importService := importerapp.NewImportService(
		fetcher, pricelist.NewParser(), importRepo, importHistoryRepo, queue, log,
	)
	basketService := tradeapp.NewBasketService(orderRepo, listingRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, contactRepo, eventBus, log)
	contactService := partnerapp.NewContactService(contactRepo, log)
	shopService := partnerapp.NewShopService(shopRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	authMiddleware := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	shopOnly := middleware.RequireShopAccount()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(accountService, authMiddleware))
	r.Register(handler.NewCatalogHandler(catalogService))
	r.Register(handler.NewBasketHandler(basketService, authMiddleware))
	r.Register(handler.NewOrderHandler(orderService, authMiddleware))
	r.Register(handler.NewContactHandler(contactService, authMiddleware))
	r.Register(handler.NewPartnerHandler(importService, shopService, orderService, authMiddleware, shopOnly))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal("HTTP server failed", zap.Error(err))
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
