package main

import (
	"os"

	"github.com/yigit/counselordesk/internal/pkg/logger"
	"github.com/yigit/counselordesk/internal/server"
)

// @title Counselor Desk API
// @version 1.0
// @description Backend of a student-affairs counselor console: roster, counseling talks, dormitory inspections, honors and growth stories

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// CONFIG_PATH overrides configs/config.yaml
	srv, err := server.NewServer(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
