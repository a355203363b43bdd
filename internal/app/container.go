package app

import (
	"context"
	"log"
	"time"

	"scholar-sync/internal/config"
	"scholar-sync/internal/database"
	dbpostgres "scholar-sync/internal/database/postgres"
	"scholar-sync/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  cache.NewRedis(log.Default()),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
