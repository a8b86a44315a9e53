package battle

import (
	"context"
	"sync"
	"time"
)

const tickEpsilon = 1e-6

// Clock converts wall time into whole simulation ticks at a fixed rate.
type Clock struct {
	mu    sync.Mutex
	tps   float64
	speed float64
	owed  float64
}

// NewClock returns a clock running at tps ticks per second and normal speed.
func NewClock(tps float64) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Clock{tps: tps, speed: 1}
}

func (c *Clock) TPS() float64 { return c.tps }

// SetSpeed scales simulated time against wall time. Zero or negative values
// are ignored.
func (c *Clock) SetSpeed(s float64) {
	if s <= 0 {
		return
	}
	c.mu.Lock()
	c.speed = s
	c.mu.Unlock()
}

func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Advance adds elapsed wall time and returns the number of whole ticks now
// owed, keeping the fractional remainder for later calls.
func (c *Clock) Advance(elapsed time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owed += elapsed.Seconds() * c.tps * c.speed
	// Durations are whole nanoseconds, so 1/tps seconds can fall a hair short.
	n := int(c.owed + tickEpsilon)
	c.owed -= float64(n)
	return n
}

// Step advances the clock and runs every owed tick back to back. Ticks owed
// while the battle is paused are dropped rather than saved up. It returns
// how many ticks ran.
func (c *Clock) Step(b *Battle, elapsed time.Duration) int {
	n := c.Advance(elapsed)
	ran := 0
	for i := 0; i < n; i++ {
		if b.Paused() {
			continue
		}
		b.Update()
		ran++
	}
	return ran
}

// Run drives b from the clock on the calling goroutine until ctx is done,
// handing a Frame to onFrame after each catch-up batch. onFrame may be nil.
func Run(ctx context.Context, b *Battle, c *Clock, onFrame func(Frame)) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / c.TPS()))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			c.Step(b, now.Sub(last))
			last = now
			if onFrame != nil {
				onFrame(b.Snapshot())
			}
		}
	}
}
