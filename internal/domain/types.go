// Package domain holds the shared storefront data model exchanged between the
// catalog client, the session stores, and the HTTP handlers.
package domain

// Product is a catalog item as presented to shoppers.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
	Path          string  `json:"path,omitempty"`
	Category      string  `json:"category,omitempty"`
	InStock       bool    `json:"inStock"`
}

// CartLine is a single entry in a shopper's cart.
type CartLine struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
	Path          string  `json:"path,omitempty"`
	Quantity      int     `json:"quantity"`
}

// WishlistItem is a saved product reference on a shopper's wishlist.
type WishlistItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Path  string  `json:"path,omitempty"`
}

// Banner is a hero slide shown in the home page carousel.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"active"`
}

// Category is a navigable product grouping. Children are at most two levels
// deep below a root category.
type Category struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID string     `json:"parentId,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// HomePayload aggregates everything the home page renders in one response.
type HomePayload struct {
	Banners       []Banner   `json:"banners"`
	Categories    []Category `json:"categories"`
	NewArrivals   []Product  `json:"newArrivals"`
	Featured      []Product  `json:"featuredProducts"`
	TodaysSpecial []Product  `json:"todaysSpecial"`
}
