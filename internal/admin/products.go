package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mygiftflora/storefront/internal/domain"
	"github.com/mygiftflora/storefront/internal/platform/pagination"
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price,omitempty"`
	Category        string  `json:"category,omitempty"`
	Slug            string  `json:"slug,omitempty"`
	InStock         bool    `json:"in_stock"`
}

// productListEnvelope captures the optional pagination metadata some backend
// deployments attach to the listing response.
type productListEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Total      *int            `json:"total"`
	Page       *int            `json:"page"`
	TotalPages *int            `json:"totalPages"`
}

// ListProducts returns one page of products. When the backend reports
// pagination metadata its slicing is trusted, otherwise the full collection is
// windowed locally.
func (c *Client) ListProducts(ctx context.Context, params pagination.Params) ([]domain.Product, pagination.Meta, error) {
	params = pagination.Must(params)
	query := url.Values{
		"page":    []string{strconv.Itoa(params.Page)},
		"perPage": []string{strconv.Itoa(params.PerPage)},
	}

	raw, err := c.doRaw(ctx, http.MethodGet, "/admin/products", query, nil, "")
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	var env productListEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		var products []domain.Product
		if err := json.Unmarshal(env.Data, &products); err != nil {
			return nil, pagination.Meta{}, fmt.Errorf("admin: decode products: %w", err)
		}
		if env.Total != nil {
			return products, serverMeta(env, params), nil
		}
		return windowProducts(products, params), paginateMeta(len(products), params), nil
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("admin: decode products: %w", err)
	}
	return windowProducts(products, params), paginateMeta(len(products), params), nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var product domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/admin/products/"+id, nil, nil, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// CreateProduct creates a product, switching to multipart encoding when an
// image file is included.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput, image *FilePart) (domain.Product, error) {
	var product domain.Product
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPost, "/admin/products", nil, input, &product); err != nil {
			return domain.Product{}, err
		}
		return product, nil
	}

	body, contentType, err := buildMultipart(productFields(input), []FilePart{*image})
	if err != nil {
		return domain.Product{}, err
	}
	if err := c.do(ctx, http.MethodPost, "/admin/products", nil, body, contentType, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// UpdateProduct updates the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput, image *FilePart) (domain.Product, error) {
	var product domain.Product
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPut, "/admin/products/"+id, nil, input, &product); err != nil {
			return domain.Product{}, err
		}
		return product, nil
	}

	body, contentType, err := buildMultipart(productFields(input), []FilePart{*image})
	if err != nil {
		return domain.Product{}, err
	}
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+id, nil, body, contentType, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil, nil)
}

func productFields(input ProductInput) map[string]string {
	fields := map[string]string{
		"name":     input.Name,
		"price":    strconv.FormatFloat(input.Price, 'f', -1, 64),
		"in_stock": strconv.FormatBool(input.InStock),
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.DiscountedPrice > 0 {
		fields["discounted_price"] = strconv.FormatFloat(input.DiscountedPrice, 'f', -1, 64)
	}
	if input.Category != "" {
		fields["category"] = input.Category
	}
	if input.Slug != "" {
		fields["slug"] = input.Slug
	}
	return fields
}

func serverMeta(env productListEnvelope, params pagination.Params) pagination.Meta {
	meta := pagination.Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      *env.Total,
		ServerSide: true,
	}
	if env.Page != nil {
		meta.Page = *env.Page
	}
	if env.TotalPages != nil {
		meta.TotalPages = *env.TotalPages
	} else if meta.PerPage > 0 {
		meta.TotalPages = (meta.Total + meta.PerPage - 1) / meta.PerPage
	}
	if meta.TotalPages < 1 {
		meta.TotalPages = 1
	}
	return meta
}

func paginateMeta(total int, params pagination.Params) pagination.Meta {
	_, _, meta := pagination.Window(total, params)
	return meta
}

func windowProducts(products []domain.Product, params pagination.Params) []domain.Product {
	start, end, _ := pagination.Window(len(products), params)
	return products[start:end]
}
