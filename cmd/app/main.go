package main

import (
	"context"
	"time"

	"hotel/config"
	"hotel/di"
	_ "hotel/docs"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const jobsStopTimeout = 30 * time.Second

// @title Hotel API
// @version 1.0
// @description Room availability, bookings and check-ins for front-desk staff.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if logFile := logger.SetFileOutput(cfg); logFile != nil {
		defer logFile.Close()
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeApp()

	if err := app.Scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start background jobs")
	}

	app.HTTP.Serve()

	ctx, cancel := context.WithTimeout(context.Background(), jobsStopTimeout)
	defer cancel()

	app.Scheduler.Stop(ctx)
}
