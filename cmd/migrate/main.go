package main

import (
	"context"
	"log"

	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(ctx, db, cfg.Database); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Printf("Migrations applied successfully (%s).", cfg.Database.Driver)
}
