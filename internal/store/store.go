// Package store persists game snapshots so a server restart (or a hub
// teardown) does not lose running games. Snapshots are stored with
// private zones included; access control happens at the transport
// layer, never here.
package store

import (
	"context"
	"errors"

	"evergrove/internal/engine"
)

// ErrNotFound is returned when no snapshot exists for a game ID.
var ErrNotFound = errors.New("snapshot not found")

// Store is the snapshot persistence contract.
type Store interface {
	Save(ctx context.Context, gameID string, snap *engine.GameSnapshot) error
	Load(ctx context.Context, gameID string) (*engine.GameSnapshot, error)
	Delete(ctx context.Context, gameID string) error
}
