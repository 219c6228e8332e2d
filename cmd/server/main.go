package main

import (
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/server"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

func main() {
	defer logging.Sync()

	srv := server.NewServer()
	if err := srv.Start(); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
