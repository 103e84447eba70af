package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/analytics"
	"uhakiki/verification-portal/verification-backend/internal/biometric"
	"uhakiki/verification-portal/verification-backend/internal/config"
	"uhakiki/verification-portal/verification-backend/internal/extraction"
	"uhakiki/verification-portal/verification-backend/internal/portal"
	"uhakiki/verification-portal/verification-backend/internal/reports"
	"uhakiki/verification-portal/verification-backend/internal/verification"
	"uhakiki/verification-portal/verification-backend/pkg/storage"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Object store for uploaded scans
	store := storage.NewFilesystemStore(cfg.Storage.BaseDir)

	// AI gateway collaborators
	extractor := extraction.NewClient(cfg.Gateway, logger)
	matcher := biometric.NewClient(cfg.Gateway, logger)

	// Portal Module (companies, API keys, sessions)
	portalRepo := portal.NewRepository(db)
	portalService := portal.NewService(portalRepo, cfg.Security.JWTSecret, logger)
	portalHandler := portal.NewHandler(portalService, logger)

	// Analytics Module (usage metering)
	analyticsRepo := analytics.NewPostgresRepository(db)
	analyticsService := analytics.NewService(analyticsRepo, logger)
	analyticsHandler := analytics.NewHandler(analyticsService, logger)

	// Verification Module (scan pipeline and records)
	verificationRepo := verification.NewRepository(db)
	verificationService := verification.NewService(
		verificationRepo, store, extractor, matcher, analyticsService,
		cfg.Storage.Bucket, logger,
	)
	verificationHandler := verification.NewHandler(verificationService, logger)

	// Reporting Module (PDF and spreadsheet exports)
	reportsHandler := reports.NewHandler(verificationService, logger)

	// Setup Router
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-API-Key, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes. Scans are submitted with an API key; record reads
	// and exports belong to the portal and require a session.
	scanAPI := router.Group("/api/v1")
	scanAPI.Use(portal.APIKeyAuth(portalService))
	{
		verificationHandler.RegisterVerifyRoutes(scanAPI)
	}

	recordAPI := router.Group("/api/v1")
	recordAPI.Use(portal.SessionAuth(portalService))
	{
		verificationHandler.RegisterRecordRoutes(recordAPI)
		reportsHandler.RegisterRoutes(recordAPI)
	}

	// Public portal routes (registration and login)
	portalPublic := router.Group("/portal")
	{
		portalHandler.RegisterRoutes(portalPublic)
	}

	// Session-protected portal routes
	portalPrivate := router.Group("/portal")
	portalPrivate.Use(portal.SessionAuth(portalService))
	{
		analyticsHandler.RegisterRoutes(portalPrivate)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
