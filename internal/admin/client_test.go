package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mygiftflora/storefront/internal/platform/pagination"
)

func newTestAdminClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Deps{BaseURL: baseURL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return client
}

func TestListBannersDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/admin/banner", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "ok", "data": [{"id": "b1", "title": "Sale", "active": true}]}`))
	}))
	defer server.Close()

	banners, err := newTestAdminClient(t, server.URL).ListBanners(context.Background())
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "b1", banners[0].ID)
	assert.True(t, banners[0].Active)
}

func TestListBannersDecodesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "b1", "title": "Sale"}]`))
	}))
	defer server.Close()

	banners, err := newTestAdminClient(t, server.URL).ListBanners(context.Background())
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "Sale", banners[0].Title)
}

func TestCreateBannerJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input BannerInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Summer", input.Title)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": "b9", "title": "Summer", "active": true}}`))
	}))
	defer server.Close()

	banner, err := newTestAdminClient(t, server.URL).CreateBanner(context.Background(), BannerInput{Title: "Summer", Active: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b9", banner.ID)
}

func TestCreateBannerMultipartWithImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Summer", r.FormValue("title"))
		assert.Equal(t, "true", r.FormValue("status"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "summer.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": "b10", "title": "Summer"}}`))
	}))
	defer server.Close()

	image := &FilePart{
		FieldName:   "image",
		FileName:    "summer.jpg",
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("fake-jpeg-bytes"),
	}
	banner, err := newTestAdminClient(t, server.URL).CreateBanner(context.Background(), BannerInput{Title: "Summer", Active: true}, image)
	require.NoError(t, err)
	assert.Equal(t, "b10", banner.ID)
}

func TestBackendErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success": false, "message": "title is required"}`))
	}))
	defer server.Close()

	_, err := newTestAdminClient(t, server.URL).CreateBanner(context.Background(), BannerInput{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "title is required", apiErr.Message)
}

func TestListProductsTrustsServerPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("perPage"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "p11", "name": "Eleven", "price": 1}], "total": 25, "page": 2, "totalPages": 3}`))
	}))
	defer server.Close()

	products, meta, err := newTestAdminClient(t, server.URL).ListProducts(context.Background(), pagination.Params{Page: 2, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, meta.ServerSide)
	assert.Equal(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestListProductsWindowsBareArrayLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "p1", "name": "One", "price": 1},
			{"id": "p2", "name": "Two", "price": 2},
			{"id": "p3", "name": "Three", "price": 3}
		]`))
	}))
	defer server.Close()

	products, meta, err := newTestAdminClient(t, server.URL).ListProducts(context.Background(), pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p3", products[0].ID)
	assert.False(t, meta.ServerSide)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestProductMetadataRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/products/p1/tags" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"success": true, "data": ["fresh", "gift"]}`))
		case r.URL.Path == "/admin/products/p1/tags" && r.Method == http.MethodPut:
			var tags []string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&tags))
			assert.Equal(t, []string{"fresh"}, tags)
			_, _ = w.Write([]byte(`{"success": true}`))
		case r.URL.Path == "/admin/products/p1/logistics" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"weight_kg": 2.5, "fragile": true}`))
		case r.URL.Path == "/admin/products/p1/furniture" && r.Method == http.MethodPut:
			var attrs FurnitureAttributes
			require.NoError(t, json.NewDecoder(r.Body).Decode(&attrs))
			assert.Equal(t, "oak", attrs.Material)
			_, _ = w.Write([]byte(`{"success": true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestAdminClient(t, server.URL)
	ctx := context.Background()

	tags, err := client.GetProductTags(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "gift"}, tags)

	require.NoError(t, client.PutProductTags(ctx, "p1", []string{"fresh"}))

	logistics, err := client.GetProductLogistics(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2.5, logistics.WeightKg)
	assert.True(t, logistics.Fragile)

	require.NoError(t, client.PutFurnitureAttributes(ctx, "p1", FurnitureAttributes{Material: "oak"}))
}

func TestDeleteProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/products/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "deleted"}`))
	}))
	defer server.Close()

	require.NoError(t, newTestAdminClient(t, server.URL).DeleteProduct(context.Background(), "p1"))
}

func TestNewClientRejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(Deps{BaseURL: "/not-absolute"})
	require.Error(t, err)
}
