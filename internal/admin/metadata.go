package admin

import (
	"context"
	"net/http"
)

// ProductSpec is one name/value specification row for a product.
type ProductSpec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Logistics captures the shipping attributes of a product.
type Logistics struct {
	WeightKg     float64 `json:"weight_kg,omitempty"`
	LengthCm     float64 `json:"length_cm,omitempty"`
	WidthCm      float64 `json:"width_cm,omitempty"`
	HeightCm     float64 `json:"height_cm,omitempty"`
	DeliveryDays int     `json:"delivery_days,omitempty"`
	Fragile      bool    `json:"fragile"`
}

// SEO holds the search metadata attached to a product page.
type SEO struct {
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
}

// FurnitureAttributes are the extra fields used by furniture products.
type FurnitureAttributes struct {
	Material      string `json:"material,omitempty"`
	Finish        string `json:"finish,omitempty"`
	AssemblyNotes string `json:"assembly_notes,omitempty"`
	SeatingCount  int    `json:"seating_count,omitempty"`
}

// GetProductTags returns the tags attached to a product.
func (c *Client) GetProductTags(ctx context.Context, productID string) ([]string, error) {
	var tags []string
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(productID, "tags"), nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// PutProductTags replaces the tags attached to a product.
func (c *Client) PutProductTags(ctx context.Context, productID string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return c.doJSON(ctx, http.MethodPut, metadataPath(productID, "tags"), nil, tags, nil)
}

// GetProductSpecs returns the specification rows for a product.
func (c *Client) GetProductSpecs(ctx context.Context, productID string) ([]ProductSpec, error) {
	var specs []ProductSpec
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(productID, "specs"), nil, nil, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// PutProductSpecs replaces the specification rows for a product.
func (c *Client) PutProductSpecs(ctx context.Context, productID string, specs []ProductSpec) error {
	if specs == nil {
		specs = []ProductSpec{}
	}
	return c.doJSON(ctx, http.MethodPut, metadataPath(productID, "specs"), nil, specs, nil)
}

// GetProductLogistics returns the shipping attributes for a product.
func (c *Client) GetProductLogistics(ctx context.Context, productID string) (Logistics, error) {
	var logistics Logistics
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(productID, "logistics"), nil, nil, &logistics); err != nil {
		return Logistics{}, err
	}
	return logistics, nil
}

// PutProductLogistics replaces the shipping attributes for a product.
func (c *Client) PutProductLogistics(ctx context.Context, productID string, logistics Logistics) error {
	return c.doJSON(ctx, http.MethodPut, metadataPath(productID, "logistics"), nil, logistics, nil)
}

// GetProductSEO returns the search metadata for a product.
func (c *Client) GetProductSEO(ctx context.Context, productID string) (SEO, error) {
	var seo SEO
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(productID, "seo"), nil, nil, &seo); err != nil {
		return SEO{}, err
	}
	return seo, nil
}

// PutProductSEO replaces the search metadata for a product.
func (c *Client) PutProductSEO(ctx context.Context, productID string, seo SEO) error {
	return c.doJSON(ctx, http.MethodPut, metadataPath(productID, "seo"), nil, seo, nil)
}

// GetFurnitureAttributes returns the furniture-specific fields for a product.
func (c *Client) GetFurnitureAttributes(ctx context.Context, productID string) (FurnitureAttributes, error) {
	var attrs FurnitureAttributes
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(productID, "furniture"), nil, nil, &attrs); err != nil {
		return FurnitureAttributes{}, err
	}
	return attrs, nil
}

// PutFurnitureAttributes replaces the furniture-specific fields for a product.
func (c *Client) PutFurnitureAttributes(ctx context.Context, productID string, attrs FurnitureAttributes) error {
	return c.doJSON(ctx, http.MethodPut, metadataPath(productID, "furniture"), nil, attrs, nil)
}

func metadataPath(productID, resource string) string {
	return "/admin/products/" + productID + "/" + resource
}
