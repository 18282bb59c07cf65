package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/technexus/blog-server/internal/config"
	"github.com/technexus/blog-server/internal/db"
	"github.com/technexus/blog-server/internal/repo"
	"github.com/technexus/blog-server/internal/scheduler"
)

func main() {
	// Load .env if present; real environment wins.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	// A missing signing secret is fatal at startup, not a per-request error.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Scheduled publishing sweep.
	go scheduler.Run(repo.NewArticleRepo(database))

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		log.Fatal(http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r))
	}
	slog.Info("starting server", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
