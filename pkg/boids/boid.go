// Package boids implements Craig Reynolds' flocking model.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Every agent computes its next state purely from a snapshot of the whole
// flock, so one tick can be evaluated in any order, or in parallel, with the
// same result.
package boids

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Float is the numeric type a flock is built on (float32 or float64).
type Float = geometry.Float

// Default agent limits.
const (
	DefaultMaxSpeed   = 2.0
	DefaultMaxForce   = 0.03
	DefaultTurnRadius = 2.0
)

// Weights controls how strongly each steering behaviour contributes to the
// force applied on every update.
type Weights[T Float] struct {
	Alignment  T `json:"alignment"`
	Cohesion   T `json:"cohesion"`
	Separation T `json:"separation"`
	Targeting  T `json:"targeting"`
}

// DefaultWeights returns alignment=1.5, cohesion=1, separation=1, targeting=0.0003.
func DefaultWeights[T Float]() Weights[T] {
	return Weights[T]{
		Alignment:  1.5,
		Cohesion:   1.0,
		Separation: 1.0,
		Targeting:  0.0003,
	}
}

// Validate rejects negative multipliers, which would turn a steering
// behaviour into its opposite.
func (w Weights[T]) Validate() error {
	weights := []struct {
		name  string
		value T
	}{
		{"alignment", w.Alignment},
		{"cohesion", w.Cohesion},
		{"separation", w.Separation},
		{"targeting", w.Targeting},
	}
	for _, wt := range weights {
		if wt.value < 0 {
			return fmt.Errorf("%s weight %v: %w", wt.name, float64(wt.value), ErrNegativeWeight)
		}
	}
	return nil
}

// Boid is the capability set shared by every agent kind, whatever the
// dimension it lives in. Vectors are exchanged in their 3D form; a 2D agent
// keeps Z at zero.
type Boid[T Float] interface {
	// Position, Velocity and Acceleration return a copy of the agent state.
	Position() geometry.Vector3D[T]
	Velocity() geometry.Vector3D[T]
	Acceleration() geometry.Vector3D[T]

	// Separate steers away from neighbors closer than the flock's GoalSeparation.
	Separate(f *Flock[T]) geometry.Vector3D[T]
	// Align steers towards the average heading of neighbors within GoalAlignment.
	Align(f *Flock[T]) geometry.Vector3D[T]
	// Cohesion steers towards the center of mass of neighbors within GoalCohesion.
	Cohesion(f *Flock[T]) geometry.Vector3D[T]
	// Seek steers towards the flock's Target, zero when there is none.
	Seek(f *Flock[T]) geometry.Vector3D[T]

	Weights() Weights[T]
	SetWeights(w Weights[T])

	// WithForce returns a new agent with force integrated into its velocity
	// and position. The receiver is left untouched.
	WithForce(force geometry.Vector3D[T]) Boid[T]
	// Update returns the agent's state for the next tick of f.
	Update(f *Flock[T]) Boid[T]
	// WithPosition returns a copy of the agent moved to pos.
	WithPosition(pos geometry.Vector3D[T]) Boid[T]

	// Dimensions is 2 or 3.
	Dimensions() int
	// State exports every field of the agent.
	State() BoidState[T]
}

// SteeringForce sums the weighted behaviours of b against the flock snapshot f.
// The targeting term is only added while f has a target.
func SteeringForce[T Float](b Boid[T], f *Flock[T]) geometry.Vector3D[T] {
	w := b.Weights()
	separation := b.Separate(f).Mul(w.Separation)
	alignment := b.Align(f).Mul(w.Alignment)
	cohesion := b.Cohesion(f).Mul(w.Cohesion)
	force := separation.Add(alignment).Add(cohesion)
	if f.Target != nil {
		force = force.Add(b.Seek(f).Mul(w.Targeting))
	}
	return force
}

// body is the kinematic view every behaviour is computed from. perceive maps
// another agent's vectors into the space this agent lives in.
type body[T Float] struct {
	pos      geometry.Vector3D[T]
	vel      geometry.Vector3D[T]
	maxSpeed T
	maxForce T
	perceive func(geometry.Vector3D[T]) geometry.Vector3D[T]
}

// steer implements Reynolds' steering: desired velocity minus current
// velocity, limited to maxForce.
func (b body[T]) steer(desired geometry.Vector3D[T]) geometry.Vector3D[T] {
	return desired.Normalize().Mul(b.maxSpeed).Sub(b.vel).ClampLen(b.maxForce)
}

func (b body[T]) separate(f *Flock[T]) geometry.Vector3D[T] {
	var steer geometry.Vector3D[T]
	var count T

	for _, other := range f.Boids {
		pos := b.perceive(other.Position())
		distance := b.pos.DistanceTo(pos)

		// distance > 0 keeps the agent itself and coincident agents out
		if distance > 0 && distance < f.GoalSeparation {
			away := b.pos.Sub(pos).Normalize()
			steer = steer.Add(mean(away, distance))
			count++
		}
	}

	if count > 0 {
		steer = mean(steer, count)
	}

	if steer.Len() > 0 {
		steer = b.steer(steer)
	}
	return steer
}

func (b body[T]) align(f *Flock[T]) geometry.Vector3D[T] {
	var sum geometry.Vector3D[T]
	var count T

	for _, other := range f.Boids {
		distance := b.pos.DistanceTo(b.perceive(other.Position()))
		if distance > 0 && distance < f.GoalAlignment {
			sum = sum.Add(b.perceive(other.Velocity()))
			count++
		}
	}

	if count == 0 {
		return geometry.Vector3D[T]{}
	}
	return b.steer(mean(sum, count))
}

func (b body[T]) cohesion(f *Flock[T]) geometry.Vector3D[T] {
	var center geometry.Vector3D[T]
	var count T

	for _, other := range f.Boids {
		pos := b.perceive(other.Position())
		distance := b.pos.DistanceTo(pos)
		if distance > 0 && distance < f.GoalCohesion {
			center = center.Add(pos)
			count++
		}
	}

	if count == 0 {
		return geometry.Vector3D[T]{}
	}
	return b.steer(mean(center, count).Sub(b.pos))
}

func (b body[T]) seek(f *Flock[T]) geometry.Vector3D[T] {
	if f.Target == nil {
		return geometry.Vector3D[T]{}
	}
	desired := b.perceive(*f.Target).Sub(b.pos)
	if desired.IsZero() {
		return geometry.Vector3D[T]{}
	}
	return b.steer(desired)
}

// mean divides every component of v by n. Callers guarantee n > 0.
func mean[T Float](v geometry.Vector3D[T], n T) geometry.Vector3D[T] {
	return geometry.Vector3D[T]{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

func identity[T Float](v geometry.Vector3D[T]) geometry.Vector3D[T] {
	return v
}
