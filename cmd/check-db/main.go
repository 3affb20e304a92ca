package main

import (
	"fmt"
	"os"

	"drs-export-worker/internal/config"
	"drs-export-worker/internal/database"
	"drs-export-worker/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Connectivity probe: connects to the configured MongoDB instance and
// prints the number of open tasks per enabled template task ID.
func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.Log.Level, "console"); err != nil {
		logger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	store, err := database.NewMongoStore(cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer store.Close()

	fmt.Printf("Connected to MongoDB (environment: %s)\n", cfg.Environment)

	for _, templateID := range cfg.TemplateTaskIDs() {
		tasks, err := store.FindOpenTasks(templateID)
		if err != nil {
			fmt.Printf("  template %d: query failed: %v\n", templateID, err)
			continue
		}
		fmt.Printf("  template %d: %d open task(s)\n", templateID, len(tasks))
	}
}
