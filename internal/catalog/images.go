package catalog

import "strings"

// RebuildImageURL resolves a backend image reference against the uploads base
// URL. Absolute http(s) URLs, typically third-party CDNs, pass through
// unchanged. Empty references stay empty.
func RebuildImageURL(uploadsBaseURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if uploadsBaseURL == "" {
		return ref
	}
	return strings.TrimRight(uploadsBaseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}
