package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

// Snapshot copies the whole custody state under one read lock.
func (s *Service) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &entity.Snapshot{
		Version:  entity.SnapshotVersion,
		TakenAt:  s.Now(),
		Users:    s.Users.List(),
		Products: s.Products.List(),
		Events:   s.Events.All(),
	}
}

// Restore replaces all state with snap. It is meant for startup, before
// the service takes calls.
func (s *Service) Restore(snap *entity.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if snap.Version != entity.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users.Replace(snap.Users)
	s.Products.Replace(snap.Products)
	s.Events.Replace(snap.Events)
	return nil
}

// SaveSnapshot writes the current state to store.
func (s *Service) SaveSnapshot(ctx context.Context, store repo.SnapshotStore) error {
	snap := s.Snapshot()
	if err := store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("users", len(snap.Users)).WithField("products", len(snap.Products)).WithField("events", len(snap.Events)).Info("snapshot saved")
	}
	return nil
}

// RestoreSnapshot loads the latest snapshot from store. It reports false
// without error when the store is empty.
func (s *Service) RestoreSnapshot(ctx context.Context, store repo.SnapshotStore) (bool, error) {
	snap, err := store.Load(ctx)
	if errors.Is(err, repo.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if err := s.Restore(snap); err != nil {
		return false, err
	}
	if s.Logger != nil {
		s.Logger.WithField("taken_at", snap.TakenAt).WithField("products", len(snap.Products)).Info("snapshot restored")
	}
	return true, nil
}
