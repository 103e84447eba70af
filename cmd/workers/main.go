package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/analytics"
	"uhakiki/verification-portal/verification-backend/internal/config"
)

// rollupSchedule runs shortly after midnight UTC so the previous day's
// usage rows are complete before they are aggregated.
const rollupSchedule = "15 0 * * *"

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := analytics.NewPostgresRepository(db)
	service := analytics.NewService(repo, logger)

	scheduler := cron.New(cron.WithLocation(time.UTC))
	_, err = scheduler.AddFunc(rollupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if _, err := service.RollupDay(ctx, yesterday); err != nil {
			logger.Error("usage rollup failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("Failed to schedule usage rollup", zap.Error(err))
	}

	scheduler.Start()
	logger.Info("Usage worker started", zap.String("schedule", rollupSchedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down usage worker...")
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	logger.Info("Usage worker exiting")
}
