package boids

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Agent kinds as written in BoidState.Kind.
const (
	Kind2D = "2d"
	Kind3D = "3d"
)

// ErrUnknownKind is returned when a BoidState carries an unsupported kind.
var ErrUnknownKind = errors.New("unknown boid kind")

// BoidState is the plain data form of a boid. It holds every field, nothing
// is derived, so a boid restored from it behaves exactly like the one it was taken from.
type BoidState[T Float] struct {
	Kind         string               `json:"kind"`
	Position     geometry.Vector3D[T] `json:"position"`
	Velocity     geometry.Vector3D[T] `json:"velocity"`
	Acceleration geometry.Vector3D[T] `json:"acceleration"`
	MaxSpeed     T                    `json:"maxSpeed"`
	MaxForce     T                    `json:"maxForce"`
	TurnRadius   T                    `json:"turnRadius"`
	Weights      Weights[T]           `json:"weights"`
}

// FlockState is the plain data form of a flock.
type FlockState[T Float] struct {
	Boids          []BoidState[T]        `json:"boids"`
	GoalSeparation T                     `json:"goalSeparation"`
	GoalAlignment  T                     `json:"goalAlignment"`
	GoalCohesion   T                     `json:"goalCohesion"`
	Target         *geometry.Vector3D[T] `json:"target,omitempty"`
}

// Validate checks the agent limits and weights.
func (s BoidState[T]) Validate() error {
	switch {
	case s.MaxSpeed < 0:
		return fmt.Errorf("maxSpeed %v: %w", float64(s.MaxSpeed), ErrNegativeLimit)
	case s.MaxForce < 0:
		return fmt.Errorf("maxForce %v: %w", float64(s.MaxForce), ErrNegativeLimit)
	case s.TurnRadius < 0:
		return fmt.Errorf("turnRadius %v: %w", float64(s.TurnRadius), ErrNegativeLimit)
	}
	return s.Weights.Validate()
}

// Boid rebuilds the agent described by s.
func (s BoidState[T]) Boid() (Boid[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case Kind2D:
		b := &Boid2D[T]{
			Pos:        geometry.To2D(s.Position),
			Vel:        geometry.To2D(s.Velocity),
			Acc:        geometry.To2D(s.Acceleration),
			MaxSpeed:   s.MaxSpeed,
			MaxForce:   s.MaxForce,
			TurnRadius: s.TurnRadius,
		}
		b.SetWeights(s.Weights)
		return b, nil
	case Kind3D:
		b := &Boid3D[T]{
			Pos:        s.Position,
			Vel:        s.Velocity,
			Acc:        s.Acceleration,
			MaxSpeed:   s.MaxSpeed,
			MaxForce:   s.MaxForce,
			TurnRadius: s.TurnRadius,
		}
		b.SetWeights(s.Weights)
		return b, nil
	default:
		return nil, fmt.Errorf("%q: %w", s.Kind, ErrUnknownKind)
	}
}

// State exports the flock population and configuration.
func (f *Flock[T]) State() FlockState[T] {
	s := FlockState[T]{
		Boids:          make([]BoidState[T], len(f.Boids)),
		GoalSeparation: f.GoalSeparation,
		GoalAlignment:  f.GoalAlignment,
		GoalCohesion:   f.GoalCohesion,
	}
	for i, b := range f.Boids {
		s.Boids[i] = b.State()
	}
	if f.Target != nil {
		target := *f.Target
		s.Target = &target
	}
	return s
}

// FromState builds a flock from s. opts are applied before the state, so
// the state's radii and target win over WithRadii and WithTarget.
func FromState[T Float](s FlockState[T], opts ...Option[T]) (*Flock[T], error) {
	f := NewFlock(opts...)
	f.Boids = make([]Boid[T], 0, len(s.Boids))
	for i, bs := range s.Boids {
		b, err := bs.Boid()
		if err != nil {
			return nil, fmt.Errorf("boid %d: %w", i, err)
		}
		f.Boids = append(f.Boids, b)
	}
	f.GoalSeparation = s.GoalSeparation
	f.GoalAlignment = s.GoalAlignment
	f.GoalCohesion = s.GoalCohesion
	f.Target = nil
	if s.Target != nil {
		f.SetTarget(*s.Target)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// MarshalState encodes the flock state as JSON.
func MarshalState[T Float](f *Flock[T]) ([]byte, error) {
	b, err := json.Marshal(f.State())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal flock state: %w", err)
	}
	return b, nil
}

// UnmarshalState decodes a flock encoded by MarshalState.
func UnmarshalState[T Float](data []byte, opts ...Option[T]) (*Flock[T], error) {
	var s FlockState[T]
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flock state: %w", err)
	}
	return FromState(s, opts...)
}
