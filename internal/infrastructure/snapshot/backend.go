package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/postgres"
)

// Clients carries whichever connections were opened at startup.
type Clients struct {
	Redis    *redis.Client
	Postgres postgres.DB
	GCS      *storage.Client
}

// Open picks the store named by cfg.SnapshotBackend. It returns nil for
// "none" so callers can skip persistence entirely.
func Open(cfg *config.Config, c Clients) (repository.SnapshotStore, error) {
	switch cfg.SnapshotBackend {
	case "", config.SnapshotNone:
		return nil, nil
	case config.SnapshotRedis:
		if c.Redis == nil {
			return nil, errors.New("snapshot backend redis: no redis client")
		}
		return NewRedisStore(c.Redis, cfg.SnapshotKey), nil
	case config.SnapshotPostgres:
		if c.Postgres == nil {
			return nil, errors.New("snapshot backend postgres: no pool")
		}
		return postgres.NewSnapshotStore(c.Postgres), nil
	case config.SnapshotGCS:
		if c.GCS == nil || cfg.GCSBucket == "" {
			return nil, errors.New("snapshot backend gcs: client and GCS_BUCKET required")
		}
		return NewGCSStore(c.GCS, cfg.GCSBucket, ObjectName(cfg.SnapshotKey)), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// ObjectName turns a redis style key into an object path.
func ObjectName(key string) string {
	return strings.ReplaceAll(key, ":", "/") + ".json"
}

// Saver is implemented by application.Service.
type Saver interface {
	SaveSnapshot(ctx context.Context, store repository.SnapshotStore) error
}

// RunPeriodic saves every interval until ctx is done. Failed saves are
// logged and retried on the next tick.
func RunPeriodic(ctx context.Context, src Saver, store repository.SnapshotStore, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := src.SaveSnapshot(ctx, store); err != nil && logger != nil {
				logger.WithError(err).Warn("periodic snapshot failed")
			}
		}
	}
}
