package main

import (
	"os"

	"github.com/yudha/sipkl/internal/pkg/logger"
	"github.com/yudha/sipkl/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
