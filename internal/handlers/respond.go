package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/admin"
	"github.com/mygiftflora/storefront/internal/platform/httpx"
	"github.com/mygiftflora/storefront/internal/platform/requestctx"
)

const maxRequestBytes = 1 << 20

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		requestctx.Logger(ctx).Warn("response encode failed", zap.Error(err))
	}
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := decoder.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeBadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	httpx.WriteError(ctx, w, httpx.NewError("bad_request", message, http.StatusBadRequest))
}

// writeUpstreamError maps backend gateway failures onto the error envelope,
// preserving the backend's status and message when it provided one.
func writeUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var apiErr *admin.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = "backend request failed"
		}
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", message, status))
		return
	}

	requestctx.Logger(ctx).Error("backend request failed", zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("backend_unavailable", "backend request failed", http.StatusBadGateway))
}
