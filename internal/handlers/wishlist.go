package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mygiftflora/storefront/internal/cartstore"
	"github.com/mygiftflora/storefront/internal/domain"
	"github.com/mygiftflora/storefront/internal/platform/httpx"
	"github.com/mygiftflora/storefront/internal/platform/requestctx"
)

type wishlistHandler struct {
	manager *cartstore.Manager
}

func (h *wishlistHandler) wishlistForRequest(w http.ResponseWriter, r *http.Request) (*cartstore.Wishlist, bool) {
	ctx := r.Context()
	sessionID := requestctx.SessionID(ctx)
	wishlist, err := h.manager.Wishlist(ctx, sessionID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("session_unavailable", "session could not be resolved", http.StatusInternalServerError))
		return nil, false
	}
	return wishlist, true
}

func (h *wishlistHandler) serveState(w http.ResponseWriter, r *http.Request) {
	wishlist, ok := h.wishlistForRequest(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, wishlist.State())
}

type wishlistAddRequest struct {
	Product domain.Product `json:"product"`
}

func (h *wishlistHandler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req wishlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Product.ID) == "" {
		writeBadRequest(ctx, w, "product id is required")
		return
	}

	wishlist, ok := h.wishlistForRequest(w, r)
	if !ok {
		return
	}
	wishlist.AddItem(ctx, req.Product)
	writeJSON(ctx, w, http.StatusOK, wishlist.State())
}

func (h *wishlistHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	wishlist, ok := h.wishlistForRequest(w, r)
	if !ok {
		return
	}
	wishlist.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	writeJSON(r.Context(), w, http.StatusOK, wishlist.State())
}

func (h *wishlistHandler) clear(w http.ResponseWriter, r *http.Request) {
	wishlist, ok := h.wishlistForRequest(w, r)
	if !ok {
		return
	}
	wishlist.Clear(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, wishlist.State())
}
