package carousel

import (
	"context"
	"testing"
	"time"
)

func TestVisibleCountBreakpoints(t *testing.T) {
	cases := []struct {
		name  string
		width int
		want  int
	}{
		{name: "desktop wide", width: 1440, want: 4},
		{name: "desktop", width: 1200, want: 4},
		{name: "laptop", width: 992, want: 4},
		{name: "tablet", width: 768, want: 3},
		{name: "large phone", width: 576, want: 2},
		{name: "phone", width: 375, want: 1},
		{name: "zero width", width: 0, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleCount(tc.width); got != tc.want {
				t.Fatalf("VisibleCount(%d) = %d, want %d", tc.width, got, tc.want)
			}
		})
	}
}

func TestCarouselPagesWithShortLastPage(t *testing.T) {
	c := New(10, 4)
	if got := c.Pages(); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}

	c.SetIndex(2)
	start, end := c.Window()
	if start != 8 || end != 10 {
		t.Fatalf("expected last page window [8,10), got [%d,%d)", start, end)
	}
}

func TestCarouselNextWrapsAround(t *testing.T) {
	c := New(6, 2)

	if got := c.Next(); got != 1 {
		t.Fatalf("expected page 1, got %d", got)
	}
	if got := c.Next(); got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}
	if got := c.Next(); got != 0 {
		t.Fatalf("expected wrap to page 0, got %d", got)
	}
}

func TestCarouselPrevWrapsAround(t *testing.T) {
	c := New(6, 2)

	if got := c.Prev(); got != 2 {
		t.Fatalf("expected wrap to last page 2, got %d", got)
	}
}

func TestCarouselSetVisibleResetsOutOfRangeIndex(t *testing.T) {
	c := New(8, 2)
	c.SetIndex(3)

	c.SetVisible(4)

	if got := c.Index(); got != 0 {
		t.Fatalf("expected reset to page 0, got %d", got)
	}
	if got := c.Pages(); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}

func TestCarouselSetVisibleKeepsInRangeIndex(t *testing.T) {
	c := New(8, 2)
	c.SetIndex(1)

	c.SetVisible(4)

	if got := c.Index(); got != 1 {
		t.Fatalf("expected index preserved, got %d", got)
	}
}

func TestCarouselSetTotalResetsOutOfRangeIndex(t *testing.T) {
	c := New(12, 4)
	c.SetIndex(2)

	c.SetTotal(4)

	if got := c.Index(); got != 0 {
		t.Fatalf("expected reset to page 0, got %d", got)
	}
}

func TestCarouselEmptyHasSinglePage(t *testing.T) {
	c := New(0, 4)
	if got := c.Pages(); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}
	if got := c.Next(); got != 0 {
		t.Fatalf("expected index pinned at 0, got %d", got)
	}
	start, end := c.Window()
	if start != 0 || end != 0 {
		t.Fatalf("expected empty window, got [%d,%d)", start, end)
	}
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(10, 3, 3)
	if start != 9 || end != 10 {
		t.Fatalf("expected [9,10), got [%d,%d)", start, end)
	}

	start, end = PageBounds(10, 3, 7)
	if start != 0 || end != 3 {
		t.Fatalf("expected out-of-range index to fall back to page 0, got [%d,%d)", start, end)
	}
}

func TestRotatorAdvancesMultiPageCarousel(t *testing.T) {
	c := New(4, 2)
	r, err := NewRotator(RotatorDeps{Carousel: c, Interval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Start(context.Background())
	defer r.Stop()

	deadline := time.After(500 * time.Millisecond)
	for c.Index() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected rotator to advance the carousel")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRotatorHoldsSinglePageCarousel(t *testing.T) {
	c := New(2, 4)
	r, err := NewRotator(RotatorDeps{Carousel: c, Interval: time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	if got := c.Index(); got != 0 {
		t.Fatalf("expected single page carousel to stay at 0, got %d", got)
	}
}

func TestRotatorRestartReplacesRunningLoop(t *testing.T) {
	c := New(4, 2)
	r, err := NewRotator(RotatorDeps{Carousel: c, Interval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}

func TestRotatorStopsOnContextCancel(t *testing.T) {
	c := New(4, 2)
	r, err := NewRotator(RotatorDeps{Carousel: c, Interval: time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	time.Sleep(10 * time.Millisecond)
	r.Stop()
}
