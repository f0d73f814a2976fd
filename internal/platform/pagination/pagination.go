package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPerPage defines the fallback number of items returned when the client omits perPage.
	DefaultPerPage = 20
	// MaxPerPage caps the supported page size to prevent unbounded responses.
	MaxPerPage = 100
)

var (
	ErrInvalidPage    = errors.New("pagination: invalid page")
	ErrInvalidPerPage = errors.New("pagination: invalid perPage")
)

// Params bundles the page-number pagination values extracted from a request.
type Params struct {
	Page    int
	PerPage int
}

// Meta describes the pagination window applied to a listing response. ServerSide
// reports whether the upstream backend performed the slicing or the collection
// was windowed locally.
type Meta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	ServerSide bool `json:"-"`
}

// FromRequest parses the supported query parameters from the supplied request.
func FromRequest(r *http.Request) (Params, error) {
	if r == nil {
		return Params{}, errors.New("pagination: nil request")
	}
	return Parse(r.URL.Query())
}

// Parse consumes the provided query values and returns the normalised Params representation.
func Parse(values url.Values) (Params, error) {
	if values == nil {
		values = url.Values{}
	}

	page, err := parsePositive(values.Get("page"), 1, ErrInvalidPage)
	if err != nil {
		return Params{}, err
	}

	perPage, err := parsePositive(values.Get("perPage"), DefaultPerPage, ErrInvalidPerPage)
	if err != nil {
		return Params{}, err
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Params{Page: page, PerPage: perPage}, nil
}

// Window computes the half-open slice bounds [start, end) for paginating a
// fully materialised collection of the given size, clamping the page into
// range, and returns the matching metadata.
func Window(total int, params Params) (int, int, Meta) {
	params = Must(params)
	if total < 0 {
		total = 0
	}

	totalPages := (total + params.PerPage - 1) / params.PerPage
	if totalPages == 0 {
		totalPages = 1
	}
	page := params.Page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * params.PerPage
	if start > total {
		start = total
	}
	end := start + params.PerPage
	if end > total {
		end = total
	}

	return start, end, Meta{
		Page:       page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Must ensures Params are always initialised with sensible defaults before use.
func Must(params Params) Params {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = DefaultPerPage
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}
	return params
}

func parsePositive(raw string, fallback int, invalid error) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: must be an integer", invalid)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", invalid)
	}
	return value, nil
}
