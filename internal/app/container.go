package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/database"
	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/domain/store"
	"careerpath/internal/infrastructure/cache"
	"careerpath/internal/infrastructure/persistence/postgres"
	"careerpath/internal/infrastructure/supabase"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *logger.Logger

	Cache    *cache.Redis
	Supabase *supabase.Client
	DB       database.DB
	Hub      *ws.Hub
	Tokens   *jwt.Service

	Auth   store.Auth
	Tables store.Tables
}

func NewContainer(ctx context.Context, cfg config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	c.Cache = cache.NewRedis(cfg.Redis, log)

	sb, err := supabase.New(supabase.Config{
		URL:     cfg.Supabase.URL,
		Key:     cfg.Supabase.Key,
		Timeout: cfg.Supabase.Timeout,
	}, cache.NewSessionStore(c.Cache), log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("supabase client: %w", err)
	}
	c.Supabase = sb
	c.Auth = sb

	switch cfg.App.DataBackend {
	case config.BackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		tables := postgres.NewTables(db, log)
		if err := tables.CheckSchema(connectCtx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("check schema: %w", err)
		}
		c.Tables = tables
	default:
		c.Tables = sb
	}

	c.Hub = ws.NewHub(log)
	c.Tokens = jwt.NewService(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	log.Info("dependencies ready", "data_backend", cfg.App.DataBackend, "cache", c.Cache.Ping(ctx) == nil)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	return errors.Join(errs...)
}
