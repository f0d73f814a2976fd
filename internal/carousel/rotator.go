package carousel

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RotatorDeps configures an auto-advance loop over a carousel.
type RotatorDeps struct {
	Carousel *Carousel
	Interval time.Duration
	Logger   *zap.Logger
}

// Rotator advances a carousel on a fixed interval while more than one page
// exists. Start is idempotent, a running loop is stopped before a new one
// begins, so duplicate tickers never accumulate.
type Rotator struct {
	mu       sync.Mutex
	carousel *Carousel
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRotator constructs a stopped rotator.
func NewRotator(deps RotatorDeps) (*Rotator, error) {
	if deps.Carousel == nil {
		return nil, errors.New("carousel: carousel is required")
	}
	if deps.Interval <= 0 {
		return nil, errors.New("carousel: rotate interval must be positive")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rotator{
		carousel: deps.Carousel,
		interval: deps.Interval,
		logger:   logger,
	}, nil
}

// Start launches the auto-advance loop. Any previously running loop is
// stopped first. The loop ends when ctx is cancelled or Stop is called.
func (r *Rotator) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.loop(loopCtx, done)
}

// Stop halts the auto-advance loop and waits for it to exit. Stopping an
// already stopped rotator is a no-op.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Rotator) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}

func (r *Rotator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.carousel.Pages() > 1 {
				index := r.carousel.Next()
				r.logger.Debug("carousel advanced", zap.Int("page", index))
			}
		}
	}
}
