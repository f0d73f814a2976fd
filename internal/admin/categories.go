package admin

import (
	"context"
	"net/http"

	"github.com/mygiftflora/storefront/internal/domain"
)

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// ListCategories returns the full category tree.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.doJSON(ctx, http.MethodGet, "/admin/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category, optionally nested under a parent.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (domain.Category, error) {
	var category domain.Category
	if err := c.doJSON(ctx, http.MethodPost, "/admin/categories", nil, input, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// UpdateCategory updates the category with the given id.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (domain.Category, error) {
	var category domain.Category
	if err := c.doJSON(ctx, http.MethodPut, "/admin/categories/"+id, nil, input, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category with the given id.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/categories/"+id, nil, nil, nil)
}
