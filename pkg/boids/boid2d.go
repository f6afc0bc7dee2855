package boids

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Boid2D is an agent living in the XY plane. Its state is stored in 2D; the
// Boid accessors expose it lifted to 3D, and 3D forces are projected back onto
// the plane before being integrated.
type Boid2D[T Float] struct {
	Pos geometry.Vector2D[T]
	Vel geometry.Vector2D[T]
	Acc geometry.Vector2D[T]

	MaxSpeed   T
	MaxForce   T
	TurnRadius T

	weights Weights[T]
}

var _ Boid[float64] = (*Boid2D[float64])(nil)

// NewBoid2DWithAngle creates a boid at pos heading along angle (radians)
// at unit speed.
func NewBoid2DWithAngle[T Float](pos geometry.Vector2D[T], angle T) *Boid2D[T] {
	return &Boid2D[T]{
		Pos:        pos,
		Vel:        geometry.Vector2D[T]{X: T(math.Cos(float64(angle))), Y: T(math.Sin(float64(angle)))},
		MaxSpeed:   DefaultMaxSpeed,
		MaxForce:   DefaultMaxForce,
		TurnRadius: DefaultTurnRadius,
		weights:    DefaultWeights[T](),
	}
}

// NewBoid2D creates a boid at pos with a uniformly random heading.
func NewBoid2D[T Float](pos geometry.Vector2D[T]) *Boid2D[T] {
	return NewBoid2DWithAngle(pos, T(rand.Float64()*2*math.Pi))
}

// NewBoid2DRand is NewBoid2D drawing the heading from rng, for reproducible flocks.
func NewBoid2DRand[T Float](pos geometry.Vector2D[T], rng *rand.Rand) *Boid2D[T] {
	return NewBoid2DWithAngle(pos, T(rng.Float64()*2*math.Pi))
}

func (b *Boid2D[T]) Position() geometry.Vector3D[T]     { return geometry.To3D(b.Pos) }
func (b *Boid2D[T]) Velocity() geometry.Vector3D[T]     { return geometry.To3D(b.Vel) }
func (b *Boid2D[T]) Acceleration() geometry.Vector3D[T] { return geometry.To3D(b.Acc) }

func (b *Boid2D[T]) Weights() Weights[T]     { return b.weights }
func (b *Boid2D[T]) SetWeights(w Weights[T]) { b.weights = w }

func (b *Boid2D[T]) Dimensions() int { return 2 }

func (b *Boid2D[T]) body() body[T] {
	return body[T]{
		pos:      b.Position(),
		vel:      b.Velocity(),
		maxSpeed: b.MaxSpeed,
		maxForce: b.MaxForce,
		perceive: geometry.Flatten[T],
	}
}

func (b *Boid2D[T]) Separate(f *Flock[T]) geometry.Vector3D[T] { return b.body().separate(f) }
func (b *Boid2D[T]) Align(f *Flock[T]) geometry.Vector3D[T]    { return b.body().align(f) }
func (b *Boid2D[T]) Cohesion(f *Flock[T]) geometry.Vector3D[T] { return b.body().cohesion(f) }
func (b *Boid2D[T]) Seek(f *Flock[T]) geometry.Vector3D[T]     { return b.body().seek(f) }

// WithForce applies force for one tick: the velocity is increased by the
// planar part of force and limited to MaxSpeed, the position advances by the
// new velocity and the acceleration is reset.
func (b *Boid2D[T]) WithForce(force geometry.Vector3D[T]) Boid[T] {
	next := *b
	next.Vel = b.Vel.Add(geometry.To2D(force)).ClampLen(b.MaxSpeed)
	next.Pos = b.Pos.Add(next.Vel)
	next.Acc = geometry.Vector2D[T]{}
	return &next
}

// WithPosition returns a copy of b moved to the planar projection of pos.
func (b *Boid2D[T]) WithPosition(pos geometry.Vector3D[T]) Boid[T] {
	next := *b
	next.Pos = geometry.To2D(pos)
	return &next
}

func (b *Boid2D[T]) Update(f *Flock[T]) Boid[T] {
	return b.WithForce(SteeringForce[T](b, f))
}

func (b *Boid2D[T]) State() BoidState[T] {
	return BoidState[T]{
		Kind:         Kind2D,
		Position:     b.Position(),
		Velocity:     b.Velocity(),
		Acceleration: b.Acceleration(),
		MaxSpeed:     b.MaxSpeed,
		MaxForce:     b.MaxForce,
		TurnRadius:   b.TurnRadius,
		Weights:      b.weights,
	}
}
