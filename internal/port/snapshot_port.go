package port

import (
	"context"
)

// Keys under which visitor state snapshots are stored.
const (
	CartKey     = "boss-vespa-cart"
	WishlistKey = "boss-vespa-wishlist"
)

// SnapshotStore keeps one opaque JSON payload per owner and key.
type SnapshotStore interface {
	Load(ctx context.Context, ownerID, key string) ([]byte, bool, error)
	Save(ctx context.Context, ownerID, key string, payload []byte) error
	Delete(ctx context.Context, ownerID, key string) (bool, error)
}
