package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyasAtabaev731/transfer-api/internal/api"
	"github.com/IlyasAtabaev731/transfer-api/internal/config"
	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/IlyasAtabaev731/transfer-api/internal/lib/logger/sl"
	"github.com/IlyasAtabaev731/transfer-api/internal/services/transfer"
	"github.com/IlyasAtabaev731/transfer-api/internal/storage/memory"
	"github.com/IlyasAtabaev731/transfer-api/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting application",
		slog.String("env", cfg.Env),
		slog.String("host", cfg.ApiHost),
		slog.Int("port", cfg.ApiPort),
		slog.String("seed_source", cfg.Seed.Source),
	)

	seed, err := loadSeed(cfg, log)
	if err != nil {
		log.Error("Failed to load seed users", sl.Err(err))
		os.Exit(1)
	}

	ledger, err := memory.New(seed)
	if err != nil {
		log.Error("Failed to build ledger", sl.Err(err))
		os.Exit(1)
	}

	transferService := transfer.New(log, ledger)

	apiServer := api.New(cfg, log, transferService)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		apiServer.MustStart()
	}()

	<-sigChan
	log.Info("Got signal to shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		log.Error("Stopping server error", sl.Err(err))
	}
}

func loadSeed(cfg *config.Config, log *slog.Logger) ([]models.User, error) {
	if cfg.Seed.Source != config.SeedSourcePostgres {
		return cfg.Seed.Users, nil
	}

	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Postgres.User,
		cfg.Postgres.Pass,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Db,
	)

	storage, err := postgres.New(dbUrl, log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := storage.Stop(); err != nil {
			log.Error("Failed to close database", sl.Err(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return storage.LoadUsers(ctx)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
