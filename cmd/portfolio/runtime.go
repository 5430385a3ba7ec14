package main

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/config"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/database"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

// runtime holds the connections shared by the subcommands. Redis and NATS are
// optional; nil means the feature they back is off.
type runtime struct {
	db    *gorm.DB
	redis *redis.Client
	nats  *nats.Conn
	bus   events.Bus

	projects repository.ProjectRepository
	posts    repository.PostRepository
	messages repository.ContactMessageRepository
	prefs    repository.PreferenceRepository
}

func openRuntime(ctx context.Context, cfg config.Config, logger zerolog.Logger, clientName string) (*runtime, error) {
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	rt := &runtime{db: db}

	if cfg.RedisURL != "" {
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, duplicate submission guard disabled")
		} else {
			rt.redis = client
		}
	}

	local := events.NewLocalBus()
	rt.bus = local
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, clientName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, change events stay in process")
		} else {
			rt.nats = conn
			rt.bus = events.NewNATSBus(local, conn, cfg.NATSSubject, logger)
		}
	}

	rt.projects = repository.NewProjectRepository(db, rt.bus, logger)
	rt.posts = repository.NewPostRepository(db, rt.bus, logger)
	rt.messages = repository.NewContactMessageRepository(db, rt.bus, logger)
	rt.prefs = repository.NewPreferenceRepository(db)
	return rt, nil
}

// startRemoteEvents begins consuming changes published by other processes.
func (rt *runtime) startRemoteEvents(ctx context.Context) error {
	bus, ok := rt.bus.(*events.NATSBus)
	if !ok {
		return nil
	}
	return bus.Start(ctx)
}

func (rt *runtime) ping() error {
	sqlDB, err := rt.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (rt *runtime) Close(logger zerolog.Logger) {
	if rt.nats != nil {
		if err := rt.nats.Drain(); err != nil {
			logger.Warn().Err(err).Msg("failed to drain nats connection")
		}
	}
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if sqlDB, err := rt.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}
}
