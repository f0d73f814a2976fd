// Package handlers wires the storefront's HTTP surface: home and navigation
// content, per-session cart and wishlist state, and the admin gateway.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/admin"
	"github.com/mygiftflora/storefront/internal/carousel"
	"github.com/mygiftflora/storefront/internal/cartstore"
	"github.com/mygiftflora/storefront/internal/catalog"
	"github.com/mygiftflora/storefront/internal/middleware"
	"github.com/mygiftflora/storefront/internal/platform/httpx"
	"github.com/mygiftflora/storefront/internal/platform/observability"
)

// Deps bundles everything the router needs.
type Deps struct {
	Logger         *zap.Logger
	Session        *middleware.Session
	Manager        *cartstore.Manager
	Catalog        *catalog.Client
	Admin          *admin.Client
	BannerCarousel *carousel.Carousel
}

// NewRouter validates deps and assembles the chi router with the full
// middleware stack and all route groups.
func NewRouter(deps Deps) (chi.Router, error) {
	if deps.Logger == nil {
		return nil, errors.New("handlers: logger is required")
	}
	if deps.Session == nil {
		return nil, errors.New("handlers: session middleware is required")
	}
	if deps.Manager == nil {
		return nil, errors.New("handlers: cart manager is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("handlers: catalog client is required")
	}
	if deps.Admin == nil {
		return nil, errors.New("handlers: admin client is required")
	}
	if deps.BannerCarousel == nil {
		return nil, errors.New("handlers: banner carousel is required")
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(observability.InjectLoggerMiddleware(deps.Logger))
	router.Use(observability.RecoveryMiddleware(deps.Logger))
	router.Use(deps.Session.Handler)
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(chimiddleware.Timeout(30 * time.Second))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, httpx.NewError("not_found", "resource not found", http.StatusNotFound))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, httpx.NewError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Get("/readyz", readyHandler(deps.Manager))

	home := &homeHandler{catalog: deps.Catalog, banners: deps.BannerCarousel}
	cart := &cartHandler{manager: deps.Manager}
	wishlist := &wishlistHandler{manager: deps.Manager}
	adminGateway := &adminHandler{client: deps.Admin}

	router.Route("/api", func(api chi.Router) {
		api.Get("/home", home.serveHome)
		api.Get("/navigation", home.serveNavigation)

		api.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.serveState)
			r.Post("/items", cart.addItem)
			r.Put("/items/{id}", cart.updateQuantity)
			r.Delete("/items/{id}", cart.removeItem)
			r.Post("/clear", cart.clear)
			r.Post("/coupon", cart.applyCoupon)
		})

		api.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlist.serveState)
			r.Post("/items", wishlist.addItem)
			r.Delete("/items/{id}", wishlist.removeItem)
			r.Post("/clear", wishlist.clear)
		})

		api.Route("/admin", adminGateway.register)
	})

	return router, nil
}

func readyHandler(manager *cartstore.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := manager.Ping(ctx); err != nil {
			httpx.WriteError(r.Context(), w, httpx.NewError("not_ready", "snapshot store unavailable", http.StatusServiceUnavailable))
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
