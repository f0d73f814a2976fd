package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/domain"
	"github.com/mygiftflora/storefront/internal/pricing"
)

const placeholderImage = "/images/placeholder.png"

// CartState is the externally visible view of a cart, combining the stored
// lines and discount with the derived totals.
type CartState struct {
	Items    []domain.CartLine `json:"items"`
	Discount float64           `json:"discount"`
	Hydrated bool              `json:"hydrated"`
	Totals   pricing.Totals    `json:"totals"`
}

// CartDeps wires a Cart to its snapshot backend.
type CartDeps struct {
	Snapshots SnapshotStore
	Key       string
	Logger    *zap.Logger
}

// Cart is the mutable per-session cart. All operations are safe for
// concurrent use and mirror the full state to the snapshot store after every
// mutation.
type Cart struct {
	mu        sync.Mutex
	items     []domain.CartLine
	discount  float64
	hydrated  bool
	key       string
	snapshots SnapshotStore
	logger    *zap.Logger
}

// NewCart constructs an empty, not yet hydrated cart.
func NewCart(deps CartDeps) (*Cart, error) {
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
	return &Cart{
		key:       deps.Key,
		snapshots: deps.Snapshots,
		logger:    logger,
	}, nil
}

// Hydrate loads the persisted snapshot into the cart. It is effective at most
// once per cart; later calls return immediately. Load failures and corrupt
// snapshots are logged and leave the cart empty, the cart still counts as
// hydrated so the shopper is never blocked.
func (c *Cart) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hydrated {
		return
	}
	c.hydrated = true

	data, err := c.snapshots.Load(ctx, c.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return
	}
	if err != nil {
		c.logger.Warn("cart snapshot load failed", zap.String("key", c.key), zap.Error(err))
		return
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		c.logger.Warn("cart snapshot corrupt", zap.String("key", c.key), zap.Error(err))
		return
	}

	c.items = sanitizeLines(lines)
}

// Hydrated reports whether hydration has already run.
func (c *Cart) Hydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated
}

// AddItem adds quantity units of the product to the cart. A non-positive
// quantity is logged and ignored. Adding a product already in the cart
// increments the existing line instead of duplicating it.
func (c *Cart) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity <= 0 {
		c.logger.Warn("cart add ignored",
			zap.String("product_id", product.ID),
			zap.Int("quantity", quantity),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity
			c.persistLocked(ctx)
			return
		}
	}

	c.items = append(c.items, lineFromProduct(product, quantity))
	c.persistLocked(ctx)
}

// RemoveItem drops the line for the given product id. Removing an absent id is
// a no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked(ctx)
			return
		}
	}
}

// UpdateQuantity sets the quantity for the given product id. Non-positive
// quantities are logged and ignored, and updating an absent id is a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		c.logger.Warn("cart quantity update ignored",
			zap.String("product_id", id),
			zap.Int("quantity", quantity),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			c.persistLocked(ctx)
			return
		}
	}
}

// Clear empties the cart and resets the discount.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.discount = 0
	c.persistLocked(ctx)
}

// ApplyDiscount stores the given absolute discount amount, clamped to zero.
// The amount is a snapshot, later subtotal changes do not recompute it.
func (c *Cart) ApplyDiscount(ctx context.Context, amount float64) {
	if amount < 0 {
		amount = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.discount = amount
	c.persistLocked(ctx)
}

// State returns a copy of the current cart contents with derived totals.
func (c *Cart) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CartLine, len(c.items))
	copy(items, c.items)

	return CartState{
		Items:    items,
		Discount: c.discount,
		Hydrated: c.hydrated,
		Totals:   pricing.Compute(items, c.discount),
	}
}

// persistLocked mirrors the full line-item list to the snapshot store. The
// discount is session state only and is never persisted. Callers must hold the
// mutex. Write failures are logged, never surfaced to the shopper.
func (c *Cart) persistLocked(ctx context.Context) {
	items := c.items
	if items == nil {
		items = []domain.CartLine{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Error("cart snapshot encode failed", zap.String("key", c.key), zap.Error(err))
		return
	}
	if err := c.snapshots.Save(ctx, c.key, data); err != nil {
		c.logger.Warn("cart snapshot save failed", zap.String("key", c.key), zap.Error(err))
	}
}

func lineFromProduct(product domain.Product, quantity int) domain.CartLine {
	image := product.Image
	if image == "" {
		image = placeholderImage
	}
	path := product.Path
	if path == "" {
		path = "/products/" + product.ID
	}
	return domain.CartLine{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Image:         image,
		Path:          path,
		Quantity:      quantity,
	}
}

func sanitizeLines(lines []domain.CartLine) []domain.CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID == "" || line.Quantity <= 0 {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
