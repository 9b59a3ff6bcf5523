package site

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the autoplay period of the testimonials carousel.
const DefaultInterval = 5 * time.Second

// Carousel cycles through n slides. Autoplay stops for good the first time
// the visitor navigates manually.
type Carousel struct {
	mu      sync.Mutex
	n       int
	index   int
	auto    bool
	stopped chan struct{}
}

func NewCarousel(n int) *Carousel {
	if n < 0 {
		n = 0
	}
	return &Carousel{n: n, auto: true, stopped: make(chan struct{})}
}

func (c *Carousel) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) AutoPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Tick advances one slide when autoplaying with more than one slide.
func (c *Carousel) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.auto || c.n <= 1 {
		return false
	}
	c.index = (c.index + 1) % c.n
	return true
}

func (c *Carousel) Next() { c.move(func(i, n int) int { return (i + 1) % n }) }
func (c *Carousel) Prev() { c.move(func(i, n int) int { return (i - 1 + n) % n }) }

// GoTo jumps to slide i; out of range values are ignored.
func (c *Carousel) GoTo(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= c.n {
		return
	}
	c.index = i
	c.stopLocked()
}

func (c *Carousel) move(to func(i, n int) int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return
	}
	c.index = to(c.index, c.n)
	c.stopLocked()
}

func (c *Carousel) stopLocked() {
	if c.auto {
		c.auto = false
		close(c.stopped)
	}
}

// Stop disables autoplay without moving.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Run ticks every interval until ctx is cancelled or autoplay is disabled.
// It returns at once when there is nothing to cycle.
func (c *Carousel) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c.mu.Lock()
	idle := !c.auto || c.n <= 1
	stopped := c.stopped
	c.mu.Unlock()
	if idle {
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopped:
			return
		case <-t.C:
			c.Tick()
		}
	}
}
