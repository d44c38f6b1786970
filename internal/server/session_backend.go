package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"catalog-admin/internal/config"
	"catalog-admin/internal/database"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/tokenstore"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// sessionPruneInterval is how often expired postgres sessions are removed
const sessionPruneInterval = 10 * time.Minute

// NewTokenStore builds the Token Store selected by cfg.Session.Backend. The
// returned closers own the backend's connections. Background work stops when
// ctx is done.
func NewTokenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (tokenstore.Store, []io.Closer, error) {
	opts := tokenstore.CookieOptions{
		Name:    cfg.Session.CookieName,
		TTL:     cfg.Session.TTL,
		Secure:  cfg.Session.SecureCookie,
		HashKey: []byte(cfg.Session.Secret),
	}
	if cfg.Session.Secret == "" {
		logger.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}

	switch cfg.Session.Backend {
	case config.SessionBackendCookie, "":
		return tokenstore.NewCookieStore(opts), nil, nil

	case config.SessionBackendMemory:
		return tokenstore.NewBackendStore(opts, repository.NewMemorySessionRepository()), nil, nil

	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		logger.Info("Using redis session backend", zap.String("addr", client.Options().Addr))
		return tokenstore.NewBackendStore(opts, repository.NewRedisSessionRepository(client)), []io.Closer{client}, nil

	case config.SessionBackendPostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		if err := database.RunMigrations(db, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if cfg.IsDevelopment() {
			if err := database.GetMigrationStatus(db); err != nil {
				logger.Warn("Failed to read migration status", zap.Error(err))
			}
		}

		sessions := repository.NewPostgresSessionRepository(db)
		if pruner, ok := sessions.(expiredSessionPruner); ok {
			go pruneSessions(ctx, pruner, sessionPruneInterval, logger)
		}

		logger.Info("Using postgres session backend", zap.String("host", cfg.Database.Host))
		return tokenstore.NewBackendStore(opts, sessions), []io.Closer{db}, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

type expiredSessionPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

func pruneSessions(ctx context.Context, pruner expiredSessionPruner, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := pruner.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("Failed to prune expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("Pruned expired sessions", zap.Int64("count", n))
			}
		}
	}
}
