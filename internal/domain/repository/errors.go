package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate key")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
