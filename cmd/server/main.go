package main

import (
	"context"
	"fmt"
	"log"

	"soroban/internal/common/config"
	"soroban/internal/server"
	"soroban/internal/server/repository"
	"soroban/internal/server/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// Soroban Card Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	app := server.New(cfg, repo, service.NewRegistry(cfg.MaxDecks))

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Soroban Card Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
