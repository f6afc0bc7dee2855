package simulation

import (
	"sync/atomic"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
)

// Bounds is the box boids fly in. A zero Depth leaves Z unbounded.
type Bounds struct {
	Width, Height, Depth float64
}

func (c *Config) Bounds() Bounds {
	b := Bounds{Width: c.WorldWidth, Height: c.WorldHeight}
	if c.Dimensions == 3 {
		b.Depth = c.WorldDepth
	}
	return b
}

// WrapPoint teleports p to the opposite edge on every axis it left the box by.
// The second result reports whether p moved.
func (b Bounds) WrapPoint(p vec3) (vec3, bool) {
	var moved bool
	p.X, moved = wrapAxis(p.X, b.Width, moved)
	p.Y, moved = wrapAxis(p.Y, b.Height, moved)
	if b.Depth > 0 {
		p.Z, moved = wrapAxis(p.Z, b.Depth, moved)
	}
	return p, moved
}

func wrapAxis(v, size float64, moved bool) (float64, bool) {
	switch {
	case v < 0:
		return size, true
	case v > size:
		return 0, true
	}
	return v, moved
}

// Wrap replaces every boid that left the box with a copy on the opposite edge
// and returns how many were moved. It must not run concurrently with Update.
func (b Bounds) Wrap(f *boids.Flock[float64]) int {
	var wrapped atomic.Int64
	f.Scheduler().Map(len(f.Boids), func(i int) {
		if p, moved := b.WrapPoint(f.Boids[i].Position()); moved {
			f.Boids[i] = f.Boids[i].WithPosition(p)
			wrapped.Add(1)
		}
	})
	return int(wrapped.Load())
}
