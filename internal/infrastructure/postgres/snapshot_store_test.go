package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

type fakeRow struct {
	payload []byte
	err     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

// fakeDB keeps inserted payloads in order and serves the last one.
type fakeDB struct {
	rows  [][]byte
	execs []string
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	f.execs = append(f.execs, sql)
	if len(args) == 3 {
		f.rows = append(f.rows, args[2].([]byte))
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	if len(f.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{payload: f.rows[len(f.rows)-1]}
}

func TestSnapshotStoreSaveLoad(t *testing.T) {
	db := &fakeDB{}
	store := NewSnapshotStore(db)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	taken := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := &entity.Snapshot{
		Version: entity.SnapshotVersion,
		TakenAt: taken,
		Users:   []entity.User{{Principal: "M", Name: "Maker", Role: entity.RoleManufacturer, IsActive: true, CreatedAt: taken}},
	}
	require.NoError(t, store.Save(ctx, snap))
	assert.Len(t, db.execs, 2, "insert then prune")

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, got.Version)
	assert.True(t, taken.Equal(got.TakenAt))
	require.Len(t, got.Users, 1)
	assert.Equal(t, entity.Principal("M"), got.Users[0].Principal)
}

func TestSnapshotStoreNoPrune(t *testing.T) {
	db := &fakeDB{}
	store := NewSnapshotStore(db)
	store.Keep = 0
	require.NoError(t, store.Save(context.Background(), &entity.Snapshot{Version: entity.SnapshotVersion}))
	assert.Len(t, db.execs, 1)
}

func TestSnapshotStoreErrors(t *testing.T) {
	boom := errors.New("conn refused")
	store := NewSnapshotStore(&fakeDB{err: boom})
	assert.ErrorIs(t, store.Save(context.Background(), &entity.Snapshot{}), boom)

	bad := NewSnapshotStore(&fakeDB{rows: [][]byte{[]byte("{")}})
	_, err := bad.Load(context.Background())
	assert.Error(t, err)
}
