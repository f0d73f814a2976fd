package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/domain"
)

// WishlistState is the externally visible view of a wishlist.
type WishlistState struct {
	Items    []domain.WishlistItem `json:"items"`
	Hydrated bool                  `json:"hydrated"`
}

// WishlistDeps wires a Wishlist to its snapshot backend.
type WishlistDeps struct {
	Snapshots SnapshotStore
	Key       string
	Logger    *zap.Logger
}

// Wishlist is the mutable per-session wishlist. Membership is a set keyed by
// product id, there are no quantities. It follows the same hydration and
// persistence contract as Cart under its own snapshot key.
type Wishlist struct {
	mu        sync.Mutex
	items     []domain.WishlistItem
	hydrated  bool
	key       string
	snapshots SnapshotStore
	logger    *zap.Logger
}

// NewWishlist constructs an empty, not yet hydrated wishlist.
func NewWishlist(deps WishlistDeps) (*Wishlist, error) {
	if deps.Snapshots == nil {
		return nil, errors.New("cartstore: snapshot store is required")
	}
	if deps.Key == "" {
		return nil, errors.New("cartstore: snapshot key is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wishlist{
		key:       deps.Key,
		snapshots: deps.Snapshots,
		logger:    logger,
	}, nil
}

// Hydrate loads the persisted snapshot into the wishlist, effective at most
// once. Failures are logged and leave the wishlist empty but hydrated.
func (w *Wishlist) Hydrate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.hydrated {
		return
	}
	w.hydrated = true

	data, err := w.snapshots.Load(ctx, w.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return
	}
	if err != nil {
		w.logger.Warn("wishlist snapshot load failed", zap.String("key", w.key), zap.Error(err))
		return
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		w.logger.Warn("wishlist snapshot corrupt", zap.String("key", w.key), zap.Error(err))
		return
	}

	for _, item := range items {
		if item.ID == "" || w.containsLocked(item.ID) {
			continue
		}
		w.items = append(w.items, item)
	}
}

// Hydrated reports whether hydration has already run.
func (w *Wishlist) Hydrated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hydrated
}

// AddItem saves the product to the wishlist. Adding an id already present is a
// no-op.
func (w *Wishlist) AddItem(ctx context.Context, product domain.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.containsLocked(product.ID) {
		return
	}

	w.items = append(w.items, domain.WishlistItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
		Path:  product.Path,
	})
	w.persistLocked(ctx)
}

// RemoveItem drops the given product id from the wishlist. Removing an absent
// id is a no-op.
func (w *Wishlist) RemoveItem(ctx context.Context, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.items {
		if w.items[i].ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.persistLocked(ctx)
			return
		}
	}
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = nil
	w.persistLocked(ctx)
}

// Contains reports whether the given product id is on the wishlist.
func (w *Wishlist) Contains(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.containsLocked(id)
}

// State returns a copy of the current wishlist contents.
func (w *Wishlist) State() WishlistState {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := make([]domain.WishlistItem, len(w.items))
	copy(items, w.items)

	return WishlistState{Items: items, Hydrated: w.hydrated}
}

func (w *Wishlist) containsLocked(id string) bool {
	for _, item := range w.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (w *Wishlist) persistLocked(ctx context.Context) {
	items := w.items
	if items == nil {
		items = []domain.WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		w.logger.Error("wishlist snapshot encode failed", zap.String("key", w.key), zap.Error(err))
		return
	}
	if err := w.snapshots.Save(ctx, w.key, data); err != nil {
		w.logger.Warn("wishlist snapshot save failed", zap.String("key", w.key), zap.Error(err))
	}
}
