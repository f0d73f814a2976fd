package cartstore

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ManagerDeps wires a Manager to its snapshot backend.
type ManagerDeps struct {
	Snapshots SnapshotStore
	Logger    *zap.Logger
}

type sessionStores struct {
	cart     *Cart
	wishlist *Wishlist
}

// Manager hands out per-session carts and wishlists, creating and hydrating
// them lazily on first access. Stores are created at most once per session and
// reused for the lifetime of the process.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*sessionStores
	snapshots SnapshotStore
	logger    *zap.Logger
}

// NewManager constructs a Manager backed by the given snapshot store.
func NewManager(deps ManagerDeps) (*Manager, error) {
	if deps.Snapshots == nil {
		return nil, errors.New("cartstore: snapshot store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions:  make(map[string]*sessionStores),
		snapshots: deps.Snapshots,
		logger:    logger,
	}, nil
}

// Cart returns the hydrated cart for the session, creating it on first use.
func (m *Manager) Cart(ctx context.Context, sessionID string) (*Cart, error) {
	stores, err := m.stores(sessionID)
	if err != nil {
		return nil, err
	}
	stores.cart.Hydrate(ctx)
	return stores.cart, nil
}

// Wishlist returns the hydrated wishlist for the session, creating it on first use.
func (m *Manager) Wishlist(ctx context.Context, sessionID string) (*Wishlist, error) {
	stores, err := m.stores(sessionID)
	if err != nil {
		return nil, err
	}
	stores.wishlist.Hydrate(ctx)
	return stores.wishlist, nil
}

// Ping reports the health of the underlying snapshot store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.snapshots.Ping(ctx)
}

func (m *Manager) stores(sessionID string) (*sessionStores, error) {
	if sessionID == "" {
		return nil, errors.New("cartstore: session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if stores, ok := m.sessions[sessionID]; ok {
		return stores, nil
	}

	cart, err := NewCart(CartDeps{
		Snapshots: m.snapshots,
		Key:       CartKey(sessionID),
		Logger:    m.logger,
	})
	if err != nil {
		return nil, err
	}
	wishlist, err := NewWishlist(WishlistDeps{
		Snapshots: m.snapshots,
		Key:       WishlistKey(sessionID),
		Logger:    m.logger,
	})
	if err != nil {
		return nil, err
	}

	stores := &sessionStores{cart: cart, wishlist: wishlist}
	m.sessions[sessionID] = stores
	return stores, nil
}
