package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	SessionMaxAge int // seconds
	AdminEmail    string
	AdminPassword string
	UploadDir     string
	SeedDemo      bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionMaxAge: 86400,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		SeedDemo:      true,
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil || age <= 0 {
			log.Fatalf("invalid SESSION_MAX_AGE: %q", v)
		}
		cfg.SessionMaxAge = age
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@gmail.com"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if v := os.Getenv("SEED_DEMO"); v != "" {
		cfg.SeedDemo = v == "true" || v == "1"
	}

	return cfg
}
