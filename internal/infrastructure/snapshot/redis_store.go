package snapshot

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
)

// RedisStore keeps the latest snapshot as one JSON value without expiry.
type RedisStore struct {
	rdb *redis.Client
	Key string
}

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, Key: key}
}

var _ repository.SnapshotStore = (*RedisStore)(nil)

func (s *RedisStore) Save(ctx context.Context, snap *entity.Snapshot) error {
	return helpers.RedisSetJSON(ctx, s.rdb, s.Key, snap, 0)
}

func (s *RedisStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	var snap entity.Snapshot
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, s.Key, &snap)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrSnapshotNotFound
	}
	return &snap, nil
}
