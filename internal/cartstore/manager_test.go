package cartstore

import (
	"context"
	"testing"

	"github.com/mygiftflora/storefront/internal/domain"
)

func TestManagerReturnsSameCartPerSession(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ManagerDeps{Snapshots: NewMemoryStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := manager.Cart(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.AddItem(ctx, domain.Product{ID: "p-1", Name: "One", Price: 10}, 1)

	second, err := manager.Cart(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the same cart instance for a session")
	}
	if got := len(second.State().Items); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
}

func TestManagerIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ManagerDeps{Snapshots: NewMemoryStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one, err := manager.Cart(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	one.AddItem(ctx, domain.Product{ID: "p-1", Name: "One", Price: 10}, 1)

	two, err := manager.Cart(ctx, "sess-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(two.State().Items); got != 0 {
		t.Fatalf("expected isolated sessions, got %d items", got)
	}
}

func TestManagerHydratesOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seed, err := NewCart(CartDeps{Snapshots: store, Key: CartKey("sess-1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seed.AddItem(ctx, domain.Product{ID: "p-1", Name: "One", Price: 10}, 2)

	manager, err := NewManager(ManagerDeps{Snapshots: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := manager.Cart(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := cart.State()
	if !state.Hydrated {
		t.Fatal("expected cart hydrated on first access")
	}
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("expected persisted state restored, got %+v", state.Items)
	}
}

func TestManagerRejectsEmptySession(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ManagerDeps{Snapshots: NewMemoryStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Cart(ctx, ""); err == nil {
		t.Fatal("expected an error for an empty session id")
	}
	if _, err := manager.Wishlist(ctx, ""); err == nil {
		t.Fatal("expected an error for an empty session id")
	}
}
