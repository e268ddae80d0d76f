package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
)

// GCSStore overwrites a single JSON object in a bucket on every save.
type GCSStore struct {
	client *storage.Client
	Bucket string
	Object string
}

func NewGCSStore(client *storage.Client, bucket, object string) *GCSStore {
	return &GCSStore{client: client, Bucket: bucket, Object: object}
}

var _ repository.SnapshotStore = (*GCSStore)(nil)

func (s *GCSStore) Save(ctx context.Context, snap *entity.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := helpers.UploadObject(ctx, s.client, s.Bucket, s.Object, "application/json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("upload %s: %w", helpers.ObjectURI(s.Bucket, s.Object), err)
	}
	return nil
}

func (s *GCSStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	b, err := helpers.ReadObject(ctx, s.client, s.Bucket, s.Object)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, repository.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", helpers.ObjectURI(s.Bucket, s.Object), err)
	}
	snap := &entity.Snapshot{}
	if err := json.Unmarshal(b, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
