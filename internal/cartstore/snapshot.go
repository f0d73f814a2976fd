// Package cartstore holds per-session cart and wishlist state with pluggable
// snapshot persistence behind the SnapshotStore interface.
package cartstore

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot exists for the given key.
var ErrSnapshotNotFound = errors.New("cartstore: snapshot not found")

const (
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"
)

// SnapshotStore persists serialised session state between visits. Load returns
// ErrSnapshotNotFound when nothing has been saved under the key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// CartKey derives the snapshot key for a session's cart.
func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// WishlistKey derives the snapshot key for a session's wishlist.
func WishlistKey(sessionID string) string {
	return wishlistKeyPrefix + sessionID
}
