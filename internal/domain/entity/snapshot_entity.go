package entity

import "time"

// SnapshotVersion is bumped whenever the Snapshot layout changes incompatibly.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of the whole custody state.
// Events keep their global append order.
type Snapshot struct {
	Version  int            `json:"version"`
	TakenAt  time.Time      `json:"taken_at"`
	Users    []User         `json:"users"`
	Products []Product      `json:"products"`
	Events   []ProductEvent `json:"events"`
}
