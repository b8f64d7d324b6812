package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	seedPath := flag.String("seed", "", "JSON file of ingredients to load before serving")
	seedOnly := flag.Bool("seed-only", false, "exit after loading -seed")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	if *seedPath != "" {
		if err := loadSeed(ctx, db, *seedPath); err != nil {
			logging.Fatal().Err(err).Str("file", *seedPath).Msg("failed to load ingredients")
		}
		if *seedOnly {
			return
		}
	}

	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to configure object storage")
	}

	app, err := config.NewApp(db, cfg, config.AppDeps{
		Storage: s3,
		Mailer:  mailing.NewMailer(mailing.LoadMailConfig()),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build app")
	}

	go func() {
		<-ctx.Done()
		logging.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logging.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logging.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info().Msg("server stopped gracefully")
}
