package pagination

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	params, err := Parse(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 1 || params.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestParseCapsPerPage(t *testing.T) {
	params, err := Parse(url.Values{"perPage": []string{"9999"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.PerPage != MaxPerPage {
		t.Fatalf("expected perPage capped at %d, got %d", MaxPerPage, params.PerPage)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	if _, err := Parse(url.Values{"page": []string{"zero"}}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := Parse(url.Values{"page": []string{"-1"}}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := Parse(url.Values{"perPage": []string{"0"}}); !errors.Is(err, ErrInvalidPerPage) {
		t.Fatalf("expected ErrInvalidPerPage, got %v", err)
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?page=3&perPage=5", nil)
	params, err := FromRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 3 || params.PerPage != 5 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestWindow(t *testing.T) {
	start, end, meta := Window(23, Params{Page: 3, PerPage: 10})
	if start != 20 || end != 23 {
		t.Fatalf("expected [20,23), got [%d,%d)", start, end)
	}
	if meta.TotalPages != 3 || meta.Page != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestWindowClampsPageIntoRange(t *testing.T) {
	start, end, meta := Window(5, Params{Page: 9, PerPage: 10})
	if start != 0 || end != 5 {
		t.Fatalf("expected clamp to the only page, got [%d,%d)", start, end)
	}
	if meta.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", meta.Page)
	}
}

func TestWindowEmptyCollection(t *testing.T) {
	start, end, meta := Window(0, Params{Page: 1, PerPage: 10})
	if start != 0 || end != 0 {
		t.Fatalf("expected empty window, got [%d,%d)", start, end)
	}
	if meta.TotalPages != 1 {
		t.Fatalf("expected a single empty page, got %d", meta.TotalPages)
	}
}
