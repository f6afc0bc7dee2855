package boids

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Boid3D is an agent living in 3D space. It uses the canonical vector type
// directly.
type Boid3D[T Float] struct {
	Pos geometry.Vector3D[T]
	Vel geometry.Vector3D[T]
	Acc geometry.Vector3D[T]

	MaxSpeed   T
	MaxForce   T
	TurnRadius T

	weights Weights[T]
}

var _ Boid[float64] = (*Boid3D[float64])(nil)

// NewBoid3DWithAngle creates a boid at pos heading along angle (radians) in
// the XY plane at unit speed.
func NewBoid3DWithAngle[T Float](pos geometry.Vector3D[T], angle T) *Boid3D[T] {
	return NewBoid3DWithVelocity(pos, geometry.Vector3D[T]{
		X: T(math.Cos(float64(angle))),
		Y: T(math.Sin(float64(angle))),
	})
}

// NewBoid3DWithVelocity creates a boid at pos moving with vel.
func NewBoid3DWithVelocity[T Float](pos, vel geometry.Vector3D[T]) *Boid3D[T] {
	return &Boid3D[T]{
		Pos:        pos,
		Vel:        vel,
		MaxSpeed:   DefaultMaxSpeed,
		MaxForce:   DefaultMaxForce,
		TurnRadius: DefaultTurnRadius,
		weights:    DefaultWeights[T](),
	}
}

// NewBoid3D creates a boid at pos with a uniformly random heading.
func NewBoid3D[T Float](pos geometry.Vector3D[T]) *Boid3D[T] {
	return NewBoid3DWithAngle(pos, T(rand.Float64()*2*math.Pi))
}

// NewBoid3DRand is NewBoid3D drawing the heading from rng.
func NewBoid3DRand[T Float](pos geometry.Vector3D[T], rng *rand.Rand) *Boid3D[T] {
	return NewBoid3DWithAngle(pos, T(rng.Float64()*2*math.Pi))
}

func (b *Boid3D[T]) Position() geometry.Vector3D[T]     { return b.Pos }
func (b *Boid3D[T]) Velocity() geometry.Vector3D[T]     { return b.Vel }
func (b *Boid3D[T]) Acceleration() geometry.Vector3D[T] { return b.Acc }

func (b *Boid3D[T]) Weights() Weights[T]     { return b.weights }
func (b *Boid3D[T]) SetWeights(w Weights[T]) { b.weights = w }

func (b *Boid3D[T]) Dimensions() int { return 3 }

func (b *Boid3D[T]) body() body[T] {
	return body[T]{
		pos:      b.Pos,
		vel:      b.Vel,
		maxSpeed: b.MaxSpeed,
		maxForce: b.MaxForce,
		perceive: identity[T],
	}
}

func (b *Boid3D[T]) Separate(f *Flock[T]) geometry.Vector3D[T] { return b.body().separate(f) }
func (b *Boid3D[T]) Align(f *Flock[T]) geometry.Vector3D[T]    { return b.body().align(f) }
func (b *Boid3D[T]) Cohesion(f *Flock[T]) geometry.Vector3D[T] { return b.body().cohesion(f) }
func (b *Boid3D[T]) Seek(f *Flock[T]) geometry.Vector3D[T]     { return b.body().seek(f) }

func (b *Boid3D[T]) WithForce(force geometry.Vector3D[T]) Boid[T] {
	next := *b
	next.Vel = b.Vel.Add(force).ClampLen(b.MaxSpeed)
	next.Pos = b.Pos.Add(next.Vel)
	next.Acc = geometry.Vector3D[T]{}
	return &next
}

func (b *Boid3D[T]) WithPosition(pos geometry.Vector3D[T]) Boid[T] {
	next := *b
	next.Pos = pos
	return &next
}

func (b *Boid3D[T]) Update(f *Flock[T]) Boid[T] {
	return b.WithForce(SteeringForce[T](b, f))
}

func (b *Boid3D[T]) State() BoidState[T] {
	return BoidState[T]{
		Kind:         Kind3D,
		Position:     b.Pos,
		Velocity:     b.Vel,
		Acceleration: b.Acc,
		MaxSpeed:     b.MaxSpeed,
		MaxForce:     b.MaxForce,
		TurnRadius:   b.TurnRadius,
		Weights:      b.weights,
	}
}
