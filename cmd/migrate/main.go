package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/imageimprov/photogame-api/internal/config"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/storage/migrations"
	"github.com/imageimprov/photogame-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize("info")
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	log.Info("Starting photogame schema migration",
		"database", cfg.DB.Name,
		"host", cfg.DB.Host,
		"rollback", *rollback,
	)

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "database", cfg.DB.Name, "error", err)
		os.Exit(1)
	}

	if *rollback {
		log.Info("Rolling back last photogame migration...")
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Rollback completed", "database", cfg.DB.Name)
	} else {
		log.Info("Applying photogame migrations...")
		if err := migrations.RunMigrations(db); err != nil {
			log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migrations completed", "database", cfg.DB.Name)
	}

	fmt.Println("Photogame schema is up to date")
}
