package main

import (
	"fmt"
	"log"

	"tcu-system/internal/config"
	"tcu-system/internal/database"
	"tcu-system/internal/handlers"
	"tcu-system/internal/server"
	"tcu-system/internal/storage"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)
	database.Seed(cfg.AdminEmail, cfg.AdminPassword, cfg.SeedDemo)

	uploads, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}
	handlers.Uploads = uploads

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
