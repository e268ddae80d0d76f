package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

// DB is the subset of *pgxpool.Pool the snapshot store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SnapshotStore appends snapshots to custody_snapshots and loads the newest.
// Older rows beyond Keep are pruned on save.
type SnapshotStore struct {
	db   DB
	Keep int
}

func NewSnapshotStore(db DB) *SnapshotStore {
	return &SnapshotStore{db: db, Keep: 10}
}

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

func (s *SnapshotStore) Save(ctx context.Context, snap *entity.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.Exec(ctx, `
		INSERT INTO custody_snapshots (version, taken_at, payload)
		VALUES ($1, $2, $3)
	`, snap.Version, snap.TakenAt, payload); err != nil {
		return err
	}
	if s.Keep > 0 {
		if _, err := s.db.Exec(ctx, `
			DELETE FROM custody_snapshots
			WHERE id NOT IN (SELECT id FROM custody_snapshots ORDER BY id DESC LIMIT $1)
		`, s.Keep); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	var payload []byte
	row := s.db.QueryRow(ctx, `
		SELECT payload
		FROM custody_snapshots
		ORDER BY id DESC
		LIMIT 1
	`)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, err
	}
	snap := &entity.Snapshot{}
	if err := json.Unmarshal(payload, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
