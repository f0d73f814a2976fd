package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mygiftflora/storefront/internal/carousel"
	"github.com/mygiftflora/storefront/internal/catalog"
	"github.com/mygiftflora/storefront/internal/domain"
	"github.com/mygiftflora/storefront/internal/nav"
)

const defaultViewportWidth = 1200

type homeHandler struct {
	catalog *catalog.Client
	banners *carousel.Carousel
}

type productSection struct {
	Items        []domain.Product `json:"items"`
	VisibleCount int              `json:"visibleCount"`
	Pages        int              `json:"pages"`
}

type bannerSection struct {
	Items []domain.Banner `json:"items"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
}

type homeResponse struct {
	Banners       bannerSection     `json:"banners"`
	Categories    []domain.Category `json:"categories"`
	NewArrivals   productSection    `json:"newArrivals"`
	Featured      productSection    `json:"featuredProducts"`
	TodaysSpecial productSection    `json:"todaysSpecial"`
}

// serveHome returns the home payload with each product section pre-windowed
// for the caller's viewport width and the hero banner page driven by the
// shared auto-advancing carousel.
func (h *homeHandler) serveHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	width := defaultViewportWidth
	if raw := strings.TrimSpace(r.URL.Query().Get("width")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeBadRequest(ctx, w, "width must be a non-negative integer")
			return
		}
		width = parsed
	}

	payload, err := h.catalog.Home(ctx)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}

	banners := activeBanners(payload.Banners)
	h.banners.SetTotal(len(banners))

	visible := carousel.VisibleCount(width)
	response := homeResponse{
		Banners: bannerSection{
			Items: banners,
			Page:  h.banners.Index(),
			Pages: h.banners.Pages(),
		},
		Categories:    payload.Categories,
		NewArrivals:   sectionFor(payload.NewArrivals, visible),
		Featured:      sectionFor(payload.Featured, visible),
		TodaysSpecial: sectionFor(payload.TodaysSpecial, visible),
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

// serveNavigation returns the category tree folded into navigation nodes.
func (h *homeHandler) serveNavigation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.catalog.Navigation(ctx)
	if err != nil {
		writeUpstreamError(ctx, w, err)
		return
	}

	nodes := nav.Build(categories)
	if nodes == nil {
		nodes = []nav.Node{}
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"items": nodes})
}

func sectionFor(products []domain.Product, visible int) productSection {
	if products == nil {
		products = []domain.Product{}
	}
	pages := (len(products) + visible - 1) / visible
	if pages < 1 {
		pages = 1
	}
	return productSection{
		Items:        products,
		VisibleCount: visible,
		Pages:        pages,
	}
}

func activeBanners(banners []domain.Banner) []domain.Banner {
	out := make([]domain.Banner, 0, len(banners))
	for _, banner := range banners {
		if banner.Active {
			out = append(out, banner)
		}
	}
	return out
}
