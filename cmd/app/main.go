package main

import (
	"github.com/rs/zerolog/log"

	"tably/config"
	"tably/di"
	"tably/shared/logger"
)

// @title Tably API
// @version 1.0
// @description Restaurant table booking and allocation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	background := di.InitializeJobs()
	if err := background.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start background jobs")
	}

	defer background.Stop()

	http := di.InitializeService()
	http.Serve()
}
