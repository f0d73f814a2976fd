package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mygiftflora/storefront/internal/domain"
)

// BannerInput is the writable part of a banner.
type BannerInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"sub_text,omitempty"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"status"`
}

// ListBanners returns every banner configured on the backend.
func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := c.doJSON(ctx, http.MethodGet, "/admin/banner", nil, nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// CreateBanner creates a banner. When an image is supplied the submission is
// encoded as multipart/form-data, otherwise as JSON.
func (c *Client) CreateBanner(ctx context.Context, input BannerInput, image *FilePart) (domain.Banner, error) {
	var banner domain.Banner
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPost, "/admin/banner", nil, input, &banner); err != nil {
			return domain.Banner{}, err
		}
		return banner, nil
	}

	body, contentType, err := buildMultipart(bannerFields(input), []FilePart{*image})
	if err != nil {
		return domain.Banner{}, err
	}
	if err := c.do(ctx, http.MethodPost, "/admin/banner", nil, body, contentType, &banner); err != nil {
		return domain.Banner{}, err
	}
	return banner, nil
}

// UpdateBanner updates the banner with the given id, using multipart encoding
// when a replacement image is supplied.
func (c *Client) UpdateBanner(ctx context.Context, id string, input BannerInput, image *FilePart) (domain.Banner, error) {
	var banner domain.Banner
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPut, "/admin/banner/"+id, nil, input, &banner); err != nil {
			return domain.Banner{}, err
		}
		return banner, nil
	}

	body, contentType, err := buildMultipart(bannerFields(input), []FilePart{*image})
	if err != nil {
		return domain.Banner{}, err
	}
	if err := c.do(ctx, http.MethodPut, "/admin/banner/"+id, nil, body, contentType, &banner); err != nil {
		return domain.Banner{}, err
	}
	return banner, nil
}

// DeleteBanner removes the banner with the given id.
func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/banner/"+id, nil, nil, nil)
}

// ToggleBannerStatus flips the active flag on the banner with the given id.
func (c *Client) ToggleBannerStatus(ctx context.Context, id string, active bool) error {
	payload := map[string]bool{"status": active}
	return c.doJSON(ctx, http.MethodPut, "/admin/banner/"+id+"/status", nil, payload, nil)
}

func bannerFields(input BannerInput) map[string]string {
	return map[string]string{
		"title":    input.Title,
		"sub_text": input.Subtitle,
		"link":     input.Link,
		"status":   strconv.FormatBool(input.Active),
	}
}
