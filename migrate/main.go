package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brequin/listings/config"
	"github.com/brequin/listings/db"
	"github.com/brequin/listings/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Database.URL == "" {
		zapLogger.Fatal("database.url is not set")
	}

	database, err := db.Open(context.Background(), cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(zapLogger); err != nil {
		zapLogger.Fatal("migrate", zap.Error(err))
	}
}
