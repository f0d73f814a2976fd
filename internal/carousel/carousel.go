// Package carousel implements the paging model behind the home page sliders:
// breakpoint-driven visible counts, wrapping page navigation, and timed
// auto-advance.
package carousel

import "sync"

// Viewport breakpoints in pixels, mirroring the storefront's responsive grid.
const (
	breakpointXL = 1200
	breakpointLG = 992
	breakpointMD = 768
	breakpointSM = 576
)

// VisibleCount maps a viewport width to the number of items shown per page.
func VisibleCount(width int) int {
	switch {
	case width >= breakpointXL:
		return 4
	case width >= breakpointLG:
		return 4
	case width >= breakpointMD:
		return 3
	case width >= breakpointSM:
		return 2
	default:
		return 1
	}
}

// Carousel partitions a flat item list into consecutive pages of visibleCount
// items and tracks the current page. Navigation wraps around in both
// directions. Safe for concurrent use.
type Carousel struct {
	mu      sync.Mutex
	total   int
	visible int
	index   int
}

// New constructs a carousel over total items showing visible items per page.
func New(total, visible int) *Carousel {
	c := &Carousel{}
	c.SetTotal(total)
	c.SetVisible(visible)
	return c
}

// Pages returns the page count. An empty carousel has one (empty) page so the
// index stays well defined.
func (c *Carousel) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagesLocked()
}

// Index returns the current page index.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Next advances to the following page, wrapping to the first page after the
// last, and returns the new index.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = (c.index + 1) % c.pagesLocked()
	return c.index
}

// Prev steps back one page, wrapping to the last page from the first, and
// returns the new index.
func (c *Carousel) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := c.pagesLocked()
	c.index = (c.index - 1 + pages) % pages
	return c.index
}

// SetIndex jumps to the given page when it is in range and is otherwise a no-op.
func (c *Carousel) SetIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= c.pagesLocked() {
		return
	}
	c.index = index
}

// SetVisible changes the per-page item count. When the current page index no
// longer exists under the new layout the carousel resets to the first page.
func (c *Carousel) SetVisible(visible int) {
	if visible < 1 {
		visible = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.visible = visible
	c.clampLocked()
}

// SetTotal changes the total item count, resetting to the first page when the
// current index falls out of range.
func (c *Carousel) SetTotal(total int) {
	if total < 0 {
		total = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = total
	c.clampLocked()
}

// Window returns the half-open item range [start, end) for the current page.
func (c *Carousel) Window() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.index * c.visible
	if start > c.total {
		start = c.total
	}
	end := start + c.visible
	if end > c.total {
		end = c.total
	}
	return start, end
}

func (c *Carousel) pagesLocked() int {
	if c.visible < 1 {
		c.visible = 1
	}
	pages := (c.total + c.visible - 1) / c.visible
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (c *Carousel) clampLocked() {
	if c.index >= c.pagesLocked() {
		c.index = 0
	}
}

// PageBounds partitions total items into pages of visible items and returns
// the half-open bounds of page index, for callers that window a slice without
// holding a Carousel.
func PageBounds(total, visible, index int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	if total < 0 {
		total = 0
	}
	pages := (total + visible - 1) / visible
	if pages < 1 {
		pages = 1
	}
	if index < 0 || index >= pages {
		index = 0
	}

	start := index * visible
	if start > total {
		start = total
	}
	end := start + visible
	if end > total {
		end = total
	}
	return start, end
}
