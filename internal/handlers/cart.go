package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mygiftflora/storefront/internal/cartstore"
	"github.com/mygiftflora/storefront/internal/domain"
	"github.com/mygiftflora/storefront/internal/platform/httpx"
	"github.com/mygiftflora/storefront/internal/platform/requestctx"
	"github.com/mygiftflora/storefront/internal/pricing"
)

type cartHandler struct {
	manager *cartstore.Manager
}

func (h *cartHandler) cartForRequest(w http.ResponseWriter, r *http.Request) (*cartstore.Cart, bool) {
	ctx := r.Context()
	sessionID := requestctx.SessionID(ctx)
	cart, err := h.manager.Cart(ctx, sessionID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("session_unavailable", "session could not be resolved", http.StatusInternalServerError))
		return nil, false
	}
	return cart, true
}

func (h *cartHandler) serveState(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, cart.State())
}

type addItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// addItem adds a product to the cart. A missing quantity defaults to one, a
// non-positive quantity is ignored by the store without an error.
func (h *cartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Product.ID) == "" {
		writeBadRequest(ctx, w, "product id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}
	cart.AddItem(ctx, req.Product, req.Quantity)
	writeJSON(ctx, w, http.StatusOK, cart.State())
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *cartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}
	cart.UpdateQuantity(ctx, id, req.Quantity)
	writeJSON(ctx, w, http.StatusOK, cart.State())
}

func (h *cartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}
	cart.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	writeJSON(r.Context(), w, http.StatusOK, cart.State())
}

func (h *cartHandler) clear(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}
	cart.Clear(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, cart.State())
}

type couponRequest struct {
	Code string `json:"code"`
}

// applyCoupon resolves the coupon against the current subtotal and stores the
// resulting discount amount. An unknown non-empty code clears the discount and
// reports the rejection, an empty code just clears it.
func (h *cartHandler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(ctx, w, "invalid request body")
		return
	}

	cart, ok := h.cartForRequest(w, r)
	if !ok {
		return
	}

	subtotal := pricing.Subtotal(cart.State().Items)
	discount, err := pricing.EvaluateCoupon(req.Code, subtotal)
	if errors.Is(err, pricing.ErrInvalidCoupon) {
		cart.ApplyDiscount(ctx, 0)
		httpx.WriteError(ctx, w, httpx.NewError("invalid_coupon", "coupon code is not valid", http.StatusUnprocessableEntity))
		return
	}
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("coupon_failed", "coupon could not be applied", http.StatusInternalServerError))
		return
	}

	cart.ApplyDiscount(ctx, discount)
	writeJSON(ctx, w, http.StatusOK, cart.State())
}
