package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yatube/internal/broker"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	handlers "yatube/internal/handler"
	"yatube/internal/logger"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

type App struct {
	Cfg       *config.Config
	DB        *database.DB
	Repo      *repository.Repository
	Services  *service.Service
	Publisher broker.Publisher
	Log       *logger.Logger
}

// New connects to Postgres, MinIO and (when configured) Kafka and wires the
// services on top of them.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	publisher := broker.New(cfg.Kafka)
	if cfg.Kafka.Enabled() {
		log.Info("app", "publishing domain events", "topic", cfg.Kafka.Topic, "brokers", len(cfg.Kafka.Brokers))
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, publisher, log)

	return &App{
		Cfg:       cfg,
		DB:        db,
		Repo:      repo,
		Services:  services,
		Publisher: publisher,
		Log:       log,
	}, nil
}

// Handler returns the HTTP entry point with the page cache for the index.
func (a *App) Handler() http.Handler {
	pageCache := cache.NewPageCache(a.Cfg.PageCacheTTL, a.Log)
	h := handlers.NewHandlers(a.Services, a.Cfg, a.Log)
	return handlers.NewRouter(h, pageCache)
}

func (a *App) Close() error {
	return errors.Join(a.Publisher.Close(), a.DB.CloseDB())
}
