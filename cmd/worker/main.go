package main

import (
	"os"
	"os/signal"
	"syscall"

	"drs-export-worker/internal/config"
	"drs-export-worker/internal/database"
	"drs-export-worker/internal/dispatcher"
	"drs-export-worker/internal/export"
	"drs-export-worker/internal/logger"
	"drs-export-worker/internal/reports"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; config.yaml is the source of truth
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	exportDir, err := cfg.ExportPath()
	if err != nil {
		logger.Fatal("failed to resolve export directory", zap.Error(err))
	}

	store, err := database.NewMongoStore(cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer store.Close()

	writer := export.NewWriter(exportDir, store)
	runner := export.NewRunner(store, writer)
	disp := dispatcher.New(store, runner, reports.Registry(), cfg.TemplateTaskIDs())

	if cfg.Scheduler.CronSpec == "" {
		// Single execution, same contract as running under an external
		// scheduler
		logger.Info("starting task processing (single execution)",
			zap.String("environment", cfg.Environment),
			zap.String("export_dir", exportDir))
		disp.Execute()
		logger.Info("task processing completed")
		return
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Scheduler.CronSpec, func() {
		disp.Execute()
	}); err != nil {
		logger.Fatal("invalid cron spec",
			zap.String("spec", cfg.Scheduler.CronSpec),
			zap.Error(err))
	}

	c.Start()
	logger.Info("task dispatch scheduler started",
		zap.String("spec", cfg.Scheduler.CronSpec),
		zap.String("environment", cfg.Environment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	logger.Info("task dispatch scheduler stopped")
}
