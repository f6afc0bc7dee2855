package boids

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"go.uber.org/zap"
)

// Default interaction radii.
const (
	DefaultGoalSeparation = 25.0
	DefaultGoalAlignment  = 50.0
	DefaultGoalCohesion   = 50.0
)

// ErrNegativeRadius is returned by Validate when an interaction radius is below zero.
var ErrNegativeRadius = errors.New("interaction radius must not be negative")

// ErrNegativeWeight is returned when a steering weight is below zero.
var ErrNegativeWeight = errors.New("steering weight must not be negative")

// ErrNegativeLimit is returned when an agent speed, force or turn limit is below zero.
var ErrNegativeLimit = errors.New("agent limit must not be negative")

// Flock owns a population of boids and the radii they interact within.
// The order of Boids is preserved by Update so that callers can map agents by index.
type Flock[T Float] struct {
	Boids []Boid[T]

	GoalSeparation T
	GoalAlignment  T
	GoalCohesion   T

	// Target is the optional point every boid seeks, weighted by Weights.Targeting.
	Target *geometry.Vector3D[T]

	scheduler Scheduler
	logger    *zap.Logger
	tick      uint64
}

// Option configures a Flock built by NewFlock.
type Option[T Float] func(*Flock[T])

// WithScheduler selects how one tick is executed, Sequential by default.
func WithScheduler[T Float](s Scheduler) Option[T] {
	return func(f *Flock[T]) {
		if s != nil {
			f.scheduler = s
		}
	}
}

// WithLogger sets the logger used for per-tick debug output.
func WithLogger[T Float](l *zap.Logger) Option[T] {
	return func(f *Flock[T]) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithRadii overrides the default separation, alignment and cohesion radii.
func WithRadii[T Float](separation, alignment, cohesion T) Option[T] {
	return func(f *Flock[T]) {
		f.GoalSeparation = separation
		f.GoalAlignment = alignment
		f.GoalCohesion = cohesion
	}
}

// WithTarget sets the point the flock steers towards.
func WithTarget[T Float](target geometry.Vector3D[T]) Option[T] {
	return func(f *Flock[T]) {
		f.SetTarget(target)
	}
}

// WithBoids seeds the flock population.
func WithBoids[T Float](boids ...Boid[T]) Option[T] {
	return func(f *Flock[T]) {
		f.Boids = append(f.Boids, boids...)
	}
}

// NewFlock returns an empty flock with radii 25/50/50 and a sequential scheduler.
func NewFlock[T Float](opts ...Option[T]) *Flock[T] {
	f := &Flock[T]{
		GoalSeparation: DefaultGoalSeparation,
		GoalAlignment:  DefaultGoalAlignment,
		GoalCohesion:   DefaultGoalCohesion,
		scheduler:      Sequential{},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Add appends boids to the flock.
func (f *Flock[T]) Add(boids ...Boid[T]) {
	f.Boids = append(f.Boids, boids...)
}

// Len returns the number of boids.
func (f *Flock[T]) Len() int {
	return len(f.Boids)
}

// Tick returns how many updates the flock went through.
func (f *Flock[T]) Tick() uint64 {
	return f.tick
}

// Scheduler returns the scheduler Update runs on.
func (f *Flock[T]) Scheduler() Scheduler {
	return f.sched()
}

// SetScheduler switches the execution strategy for subsequent updates.
func (f *Flock[T]) SetScheduler(s Scheduler) {
	f.scheduler = s
}

// SetTarget makes every boid seek target.
func (f *Flock[T]) SetTarget(target geometry.Vector3D[T]) {
	f.Target = &target
}

// ClearTarget stops target seeking.
func (f *Flock[T]) ClearTarget() {
	f.Target = nil
}

// Validate checks the flock invariants: radii, then every agent's limits
// and weights.
func (f *Flock[T]) Validate() error {
	radii := []struct {
		name  string
		value T
	}{
		{"separation", f.GoalSeparation},
		{"alignment", f.GoalAlignment},
		{"cohesion", f.GoalCohesion},
	}
	for _, r := range radii {
		if r.value < 0 {
			return fmt.Errorf("%s radius %v: %w", r.name, float64(r.value), ErrNegativeRadius)
		}
	}
	for i, b := range f.Boids {
		if err := b.State().Validate(); err != nil {
			return fmt.Errorf("boid %d: %w", i, err)
		}
	}
	return nil
}

// Update advances every boid by one tick.
// All boids read the same snapshot taken before the step and the new
// population replaces the old one only once every boid has been computed,
// so no boid ever sees another boid's next state.
func (f *Flock[T]) Update() {
	snapshot := f.snapshot()
	next := make([]Boid[T], len(snapshot.Boids))

	f.sched().Map(len(next), func(i int) {
		next[i] = snapshot.Boids[i].Update(snapshot)
	})

	f.Boids = next
	f.tick++
	f.log().Debug("flock updated",
		zap.Uint64("tick", f.tick),
		zap.Int("boids", len(next)),
		zap.Stringer("scheduler", f.sched()))
}

// Step runs n updates.
func (f *Flock[T]) Step(n int) {
	for i := 0; i < n; i++ {
		f.Update()
	}
}

// snapshot returns a shallow copy of f whose slice and target are private to
// the tick being computed.
func (f *Flock[T]) snapshot() *Flock[T] {
	s := *f
	s.Boids = make([]Boid[T], len(f.Boids))
	copy(s.Boids, f.Boids)
	if f.Target != nil {
		target := *f.Target
		s.Target = &target
	}
	return &s
}

// sched and log cover flocks built as struct literals instead of NewFlock.
func (f *Flock[T]) sched() Scheduler {
	if f.scheduler == nil {
		return Sequential{}
	}
	return f.scheduler
}

func (f *Flock[T]) log() *zap.Logger {
	if f.logger == nil {
		return zap.NewNop()
	}
	return f.logger
}
