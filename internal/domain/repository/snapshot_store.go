package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
)

// SnapshotStore persists whole-state snapshots outside the process.
// Load returns ErrSnapshotNotFound when nothing has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, s *entity.Snapshot) error
	Load(ctx context.Context) (*entity.Snapshot, error)
}
