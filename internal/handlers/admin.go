package handlers

import (
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mygiftflora/storefront/internal/admin"
	"github.com/mygiftflora/storefront/internal/platform/pagination"
)

const maxUploadBytes = 10 << 20

type adminHandler struct {
	client *admin.Client
}

func (h *adminHandler) register(r chi.Router) {
	r.Route("/banners", func(r chi.Router) {
		r.Get("/", h.listBanners)
		r.Post("/", h.createBanner)
		r.Put("/{id}", h.updateBanner)
		r.Delete("/{id}", h.deleteBanner)
		r.Put("/{id}/status", h.toggleBannerStatus)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)

		r.Get("/{id}/tags", h.getProductTags)
		r.Put("/{id}/tags", h.putProductTags)
		r.Get("/{id}/specs", h.getProductSpecs)
		r.Put("/{id}/specs", h.putProductSpecs)
		r.Get("/{id}/logistics", h.getProductLogistics)
		r.Put("/{id}/logistics", h.putProductLogistics)
		r.Get("/{id}/seo", h.getProductSEO)
		r.Put("/{id}/seo", h.putProductSEO)
		r.Get("/{id}/furniture", h.getFurnitureAttributes)
		r.Put("/{id}/furniture", h.putFurnitureAttributes)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Put("/{id}", h.updateCategory)
		r.Delete("/{id}", h.deleteCategory)
	})
}

// isMultipart reports whether the submission carries a file upload.
func isMultipart(r *http.Request) bool {
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return contentType == "multipart/form-data"
}

// filePartFromForm lifts the uploaded image, when present, into the gateway's
// file representation. The caller owns closing nothing: the multipart file is
// read fully by the backend request before the handler returns.
func filePartFromForm(r *http.Request, field string) (*admin.FilePart, *multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	part := &admin.FilePart{
		FieldName:   field,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}
	return part, &file, nil
}

func (h *adminHandler) listBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.client.ListBanners(r.Context())
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"items": banners})
}

func bannerInputFromForm(r *http.Request) admin.BannerInput {
	return admin.BannerInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("sub_text"),
		Link:     r.FormValue("link"),
		Active:   parseFormBool(r.FormValue("status")),
	}
}

func (h *adminHandler) createBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.BannerInput
	var image *admin.FilePart
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeBadRequest(ctx, w, "invalid multipart form")
			return
		}
		input = bannerInputFromForm(r)
		part, file, err := filePartFromForm(r, "image")
		if err != nil {
			writeBadRequest(ctx, w, "invalid image upload")
			return
		}
		if file != nil {
			defer (*file).Close()
		}
		image = part
	} else if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	if strings.TrimSpace(input.Title) == "" {
		writeBadRequest(ctx, w, "title is required")
		return
	}

	banner, err := h.client.CreateBanner(ctx, input, image)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, banner)
}

func (h *adminHandler) updateBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input admin.BannerInput
	var image *admin.FilePart
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeBadRequest(ctx, w, "invalid multipart form")
			return
		}
		input = bannerInputFromForm(r)
		part, file, err := filePartFromForm(r, "image")
		if err != nil {
			writeBadRequest(ctx, w, "invalid image upload")
			return
		}
		if file != nil {
			defer (*file).Close()
		}
		image = part
	} else if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	banner, err := h.client.UpdateBanner(ctx, id, input, image)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, banner)
}

func (h *adminHandler) deleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteBanner(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]bool{"deleted": true})
}

type toggleStatusRequest struct {
	Active bool `json:"active"`
}

func (h *adminHandler) toggleBannerStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req toggleStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.ToggleBannerStatus(ctx, chi.URLParam(r, "id"), req.Active); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *adminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := pagination.FromRequest(r)
	if err != nil {
		writeBadRequest(ctx, w, "invalid pagination parameters")
		return
	}

	products, meta, err := h.client.ListProducts(ctx, params)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"items": products, "pagination": meta})
}

func productInputFromForm(r *http.Request) admin.ProductInput {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	discounted, _ := strconv.ParseFloat(r.FormValue("discounted_price"), 64)
	return admin.ProductInput{
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		Price:           price,
		DiscountedPrice: discounted,
		Category:        r.FormValue("category"),
		Slug:            r.FormValue("slug"),
		InStock:         parseFormBool(r.FormValue("in_stock")),
	}
}

func (h *adminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.ProductInput
	var image *admin.FilePart
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeBadRequest(ctx, w, "invalid multipart form")
			return
		}
		input = productInputFromForm(r)
		part, file, err := filePartFromForm(r, "image")
		if err != nil {
			writeBadRequest(ctx, w, "invalid image upload")
			return
		}
		if file != nil {
			defer (*file).Close()
		}
		image = part
	} else if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		writeBadRequest(ctx, w, "name is required")
		return
	}
	if input.Price < 0 {
		writeBadRequest(ctx, w, "price must not be negative")
		return
	}

	product, err := h.client.CreateProduct(ctx, input, image)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, product)
}

func (h *adminHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.client.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, product)
}

func (h *adminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input admin.ProductInput
	var image *admin.FilePart
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeBadRequest(ctx, w, "invalid multipart form")
			return
		}
		input = productInputFromForm(r)
		part, file, err := filePartFromForm(r, "image")
		if err != nil {
			writeBadRequest(ctx, w, "invalid image upload")
			return
		}
		if file != nil {
			defer (*file).Close()
		}
		image = part
	} else if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	product, err := h.client.UpdateProduct(ctx, id, input, image)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, product)
}

func (h *adminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *adminHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.ListCategories(r.Context())
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"items": categories})
}

func (h *adminHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.CategoryInput
	if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		writeBadRequest(ctx, w, "name is required")
		return
	}

	category, err := h.client.CreateCategory(ctx, input)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, category)
}

func (h *adminHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.CategoryInput
	if err := decodeJSON(r, &input); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	category, err := h.client.UpdateCategory(ctx, chi.URLParam(r, "id"), input)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, category)
}

func (h *adminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *adminHandler) getProductTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.client.GetProductTags(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"tags": tags})
}

func (h *adminHandler) putProductTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var tags []string
	if err := decodeJSON(r, &tags); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.PutProductTags(ctx, chi.URLParam(r, "id"), tags); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"tags": tags})
}

func (h *adminHandler) getProductSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := h.client.GetProductSpecs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	if specs == nil {
		specs = []admin.ProductSpec{}
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"specs": specs})
}

func (h *adminHandler) putProductSpecs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var specs []admin.ProductSpec
	if err := decodeJSON(r, &specs); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.PutProductSpecs(ctx, chi.URLParam(r, "id"), specs); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"specs": specs})
}

func (h *adminHandler) getProductLogistics(w http.ResponseWriter, r *http.Request) {
	logistics, err := h.client.GetProductLogistics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, logistics)
}

func (h *adminHandler) putProductLogistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var logistics admin.Logistics
	if err := decodeJSON(r, &logistics); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.PutProductLogistics(ctx, chi.URLParam(r, "id"), logistics); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, logistics)
}

func (h *adminHandler) getProductSEO(w http.ResponseWriter, r *http.Request) {
	seo, err := h.client.GetProductSEO(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, seo)
}

func (h *adminHandler) putProductSEO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var seo admin.SEO
	if err := decodeJSON(r, &seo); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.PutProductSEO(ctx, chi.URLParam(r, "id"), seo); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, seo)
}

func (h *adminHandler) getFurnitureAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := h.client.GetFurnitureAttributes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, attrs)
}

func (h *adminHandler) putFurnitureAttributes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var attrs admin.FurnitureAttributes
	if err := decodeJSON(r, &attrs); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if err := h.client.PutFurnitureAttributes(ctx, chi.URLParam(r, "id"), attrs); err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, attrs)
}

func parseFormBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
