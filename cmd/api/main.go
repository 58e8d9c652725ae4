package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/internal/cases"
	"fairclaim/portal-backend/internal/classifier"
	"fairclaim/portal-backend/internal/config"
	"fairclaim/portal-backend/internal/dashboard"
	"fairclaim/portal-backend/internal/grievances"
	"fairclaim/portal-backend/internal/notifications"
	"fairclaim/portal-backend/internal/reports"
	"fairclaim/portal-backend/internal/verification"
	"fairclaim/portal-backend/internal/verification/engines"
	"fairclaim/portal-backend/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Primary ORM connection for the transactional modules
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&auth.User{},
		&cases.Case{},
		&cases.CaseStatusHistory{},
		&grievances.Grievance{},
		&notifications.SentNotification{},
	); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Separate sqlx connection for the read-heavy aggregation queries
	sqlDB, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize document storage", zap.Error(err))
	}

	tokens := auth.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.TokenExpiryMinutes)

	authService := auth.NewService(auth.NewRepository(gormDB), tokens, logger)
	authHandler := auth.NewHandler(authService, tokens)
	directory := &userDirectory{users: authService}

	smsConfig := notifications.ProviderConfig{
		AccountSID:          cfg.SMS.AccountSID,
		AuthToken:           cfg.SMS.AuthToken,
		MessagingServiceSID: cfg.SMS.MessagingServiceSID,
	}
	notifier := notifications.NewService(gormDB, smsConfig, notifications.NewTwilioSender(smsConfig), logger)

	caseRepo := cases.NewRepository(gormDB)
	caseService := cases.NewService(caseRepo, notifier, logger)
	caseHandler := cases.NewHandler(caseService, directory, store)

	grievanceRepo := grievances.NewRepository(gormDB)
	grievanceService := grievances.NewService(grievanceRepo, caseRepo, classifier.New(), notifier, logger)
	grievanceHandler := grievances.NewHandler(grievanceService, directory)

	escalator := grievances.NewEscalator(grievanceRepo, logger)
	if err := escalator.Start(); err != nil {
		logger.Fatal("failed to start grievance escalator", zap.Error(err))
	}
	defer escalator.Stop()

	dashboardService := dashboard.NewService(dashboard.NewPostgresRepository(sqlDB), logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, directory)

	reportsService := reports.NewService(reports.NewPostgresRepository(sqlDB), logger)
	reportsHandler := reports.NewHandler(reportsService)

	verifyCfg := verification.DefaultConfig()
	verifyCfg.AllowPartialAadhaar = cfg.Verification.AllowPartialAadhaar
	agent := verification.NewAgent(verifyCfg, engines.Default(cfg.Verification.TransliterationEndpoint), logger)
	verifyHandler := verification.NewHandler(agent, directory, cfg.Uploads.Dir, logger)

	router := gin.Default()
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api)

	protected := api.Group("", tokens.Middleware())
	{
		caseHandler.RegisterRoutes(protected)
		grievanceHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
		reportsHandler.RegisterRoutes(protected)
		verifyHandler.RegisterRoutes(protected)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exiting")
}

func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Uploads.S3Bucket != "" {
		return storage.NewS3Store(context.Background(), cfg.Uploads.S3Region, cfg.Uploads.S3Bucket)
	}
	return storage.NewLocalStore(cfg.Uploads.Dir)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
