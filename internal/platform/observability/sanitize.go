package observability

import (
	"net/http"
	"strings"
)

// SanitizeMethod normalises HTTP method names for log fields.
func SanitizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	if method == "" {
		return "UNKNOWN"
	}
	return sanitizeString(method, 16)
}

// SanitizeRoute strips control characters from route patterns before logging.
func SanitizeRoute(route string) string {
	return sanitizeString(route, 256)
}

func sanitizeString(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
