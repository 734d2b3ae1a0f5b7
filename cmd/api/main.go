package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imageimprov/photogame-api/internal/assetstore"
	"github.com/imageimprov/photogame-api/internal/config"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/server"
	"github.com/imageimprov/photogame-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(getLogLevel(cfg))
	log := logger.Get()

	log.Info("Starting Photogame API",
		"port", cfg.Server.Port,
		"store_root", cfg.Store.Root,
		"ballot_size", cfg.Game.BallotSize,
	)

	container, err := postgres.NewContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	store := assetstore.New(cfg.Store.Root)

	srv := server.New(cfg, container, store)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}

	if err := container.CloseWithTimeout(5 * time.Second); err != nil {
		log.Error("Storage shutdown failed", "error", err)
	}

	log.Info("Photogame API stopped")
}

func getLogLevel(cfg *config.Config) string {
	if cfg.Server.GinMode == "release" {
		return "info"
	}
	return "debug"
}
