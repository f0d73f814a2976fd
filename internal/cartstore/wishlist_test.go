package cartstore

import (
	"context"
	"testing"

	"github.com/mygiftflora/storefront/internal/domain"
)

func newTestWishlist(t *testing.T, store SnapshotStore) *Wishlist {
	t.Helper()
	wishlist, err := NewWishlist(WishlistDeps{Snapshots: store, Key: WishlistKey("sess-1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return wishlist
}

func TestWishlistAddItemIsSetSemantics(t *testing.T) {
	ctx := context.Background()
	wishlist := newTestWishlist(t, NewMemoryStore())
	product := domain.Product{ID: "p-vase", Name: "Ceramic Vase", Price: 80}

	wishlist.AddItem(ctx, product)
	wishlist.AddItem(ctx, product)

	if got := len(wishlist.State().Items); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
	if !wishlist.Contains("p-vase") {
		t.Fatal("expected wishlist to contain p-vase")
	}
}

func TestWishlistRemoveItem(t *testing.T) {
	ctx := context.Background()
	wishlist := newTestWishlist(t, NewMemoryStore())
	wishlist.AddItem(ctx, domain.Product{ID: "p-vase", Name: "Ceramic Vase", Price: 80})

	wishlist.RemoveItem(ctx, "p-missing")
	if got := len(wishlist.State().Items); got != 1 {
		t.Fatalf("expected absent removal to be a no-op, got %d items", got)
	}

	wishlist.RemoveItem(ctx, "p-vase")
	if wishlist.Contains("p-vase") {
		t.Fatal("expected p-vase to be removed")
	}
}

func TestWishlistRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := newTestWishlist(t, store)
	first.Hydrate(ctx)
	first.AddItem(ctx, domain.Product{ID: "p-vase", Name: "Ceramic Vase", Price: 80})
	first.AddItem(ctx, domain.Product{ID: "p-lamp", Name: "Desk Lamp", Price: 45})

	second := newTestWishlist(t, store)
	second.Hydrate(ctx)

	got := second.State().Items
	if len(got) != 2 || got[0].ID != "p-vase" || got[1].ID != "p-lamp" {
		t.Fatalf("expected ordered round trip, got %+v", got)
	}
}

func TestWishlistHydrateDropsDuplicatesAndBlankIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	payload := []byte(`[{"id":"p-a","name":"A","price":1},{"id":"p-a","name":"A again","price":1},{"id":"","name":"blank","price":1}]`)
	if err := store.Save(ctx, WishlistKey("sess-1"), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wishlist := newTestWishlist(t, store)
	wishlist.Hydrate(ctx)

	got := wishlist.State().Items
	if len(got) != 1 || got[0].ID != "p-a" {
		t.Fatalf("expected a single deduplicated item, got %+v", got)
	}
}

func TestWishlistSeparateStorageKeyFromCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	cart, err := NewCart(CartDeps{Snapshots: store, Key: CartKey("sess-1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart.AddItem(ctx, domain.Product{ID: "p-cart", Name: "Cart Only", Price: 9}, 1)

	wishlist := newTestWishlist(t, store)
	wishlist.Hydrate(ctx)

	if got := len(wishlist.State().Items); got != 0 {
		t.Fatalf("expected cart writes to be invisible to the wishlist, got %d items", got)
	}
}
