package main

import (
	"log"

	"github.com/Ines207/ARI/internal/bootstrap"
	"github.com/Ines207/ARI/internal/config"
	"github.com/Ines207/ARI/internal/server"
)

func main() {
	cfg := config.Load()

	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	srv := server.New(cfg, container)
	if err := srv.Run(); err != nil {
		log.Fatalf("[FATAL] Server stopped: %v", err)
	}
}
