package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"google.golang.org/protobuf/types/known/structpb"
)

// Keys understood by the world actor in a *structpb.Struct command.
const (
	KeyGoalSeparation = "goalSeparation"
	KeyGoalAlignment  = "goalAlignment"
	KeyGoalCohesion   = "goalCohesion"
	KeyTarget         = "target" // {x, y, z} or null to clear
	KeyWeights        = "weights"
	KeyParallel       = "parallel"
	KeyWorkers        = "workers"
)

var ErrInvalidCommand = errors.New("invalid command")

// RadiiCommand changes the three neighborhood radii.
func RadiiCommand(separation, alignment, cohesion float64) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyGoalSeparation: structpb.NewNumberValue(separation),
		KeyGoalAlignment:  structpb.NewNumberValue(alignment),
		KeyGoalCohesion:   structpb.NewNumberValue(cohesion),
	}}
}

// TargetCommand sets the flock target, or clears it when target is nil.
func TargetCommand(target *vec3) *structpb.Struct {
	v := structpb.NewNullValue()
	if target != nil {
		v = vectorValue(*target)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{KeyTarget: v}}
}

// WeightsCommand gives every boid the same behaviour weights.
func WeightsCommand(w boids.Weights[float64]) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyWeights: weightsValue(w),
	}}
}

// SchedulerCommand switches between sequential and parallel updates.
func SchedulerCommand(parallel bool, workers int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeyParallel: structpb.NewBoolValue(parallel),
		KeyWorkers:  structpb.NewNumberValue(float64(workers)),
	}}
}

// command is a decoded and checked *structpb.Struct. Nil fields are left
// unchanged when applied.
type command struct {
	separation, alignment, cohesion *float64

	target      *vec3
	clearTarget bool

	weights map[string]float64

	parallel *bool
	workers  *int
}

func parseCommand(msg *structpb.Struct) (*command, error) {
	c := &command{}
	for key, v := range msg.GetFields() {
		switch key {
		case KeyGoalSeparation, KeyGoalAlignment, KeyGoalCohesion:
			r, err := number(key, v)
			if err != nil {
				return nil, err
			}
			if r < 0 {
				return nil, fmt.Errorf("%w: %s %v: %w", ErrInvalidCommand, key, r, boids.ErrNegativeRadius)
			}
			switch key {
			case KeyGoalSeparation:
				c.separation = &r
			case KeyGoalAlignment:
				c.alignment = &r
			default:
				c.cohesion = &r
			}
		case KeyTarget:
			if _, ok := v.GetKind().(*structpb.Value_NullValue); ok {
				c.clearTarget = true
				continue
			}
			t, err := vector(v)
			if err != nil {
				return nil, err
			}
			c.target = &t
		case KeyWeights:
			w, err := numbers(key, v, "alignment", "cohesion", "separation", "targeting")
			if err != nil {
				return nil, err
			}
			for name, n := range w {
				if n < 0 {
					return nil, fmt.Errorf("%w: %s.%s must not be negative, got %v", ErrInvalidCommand, key, name, n)
				}
			}
			c.weights = w
		case KeyParallel:
			b, ok := v.GetKind().(*structpb.Value_BoolValue)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidCommand, key)
			}
			c.parallel = &b.BoolValue
		case KeyWorkers:
			n, err := number(key, v)
			if err != nil {
				return nil, err
			}
			if n < 0 || n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: %s must be a non negative integer, got %v", ErrInvalidCommand, key, n)
			}
			workers := int(n)
			c.workers = &workers
		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidCommand, key)
		}
	}
	return c, nil
}

func (c *command) apply(f *boids.Flock[float64]) {
	if c.separation != nil {
		f.GoalSeparation = *c.separation
	}
	if c.alignment != nil {
		f.GoalAlignment = *c.alignment
	}
	if c.cohesion != nil {
		f.GoalCohesion = *c.cohesion
	}

	switch {
	case c.clearTarget:
		f.ClearTarget()
	case c.target != nil:
		f.SetTarget(*c.target)
	}

	if c.weights != nil {
		for _, b := range f.Boids {
			b.SetWeights(mergeWeights(b.Weights(), c.weights))
		}
	}

	if c.parallel != nil || c.workers != nil {
		parallel, workers := false, 0
		if p, ok := f.Scheduler().(boids.Parallel); ok {
			parallel, workers = true, p.Workers
		}
		if c.parallel != nil {
			parallel = *c.parallel
		}
		if c.workers != nil {
			workers = *c.workers
		}
		f.SetScheduler(boids.NewScheduler(parallel, workers))
	}
}

func mergeWeights(w boids.Weights[float64], fields map[string]float64) boids.Weights[float64] {
	for name, value := range fields {
		switch name {
		case "alignment":
			w.Alignment = value
		case "cohesion":
			w.Cohesion = value
		case "separation":
			w.Separation = value
		case "targeting":
			w.Targeting = value
		}
	}
	return w
}

func number(key string, v *structpb.Value) (float64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", ErrInvalidCommand, key)
	}
	return n.NumberValue, nil
}

// numbers decodes a struct whose keys are all in allowed and whose values are
// finite numbers.
func numbers(key string, v *structpb.Value, allowed ...string) (map[string]float64, error) {
	s := v.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidCommand, key)
	}
	out := make(map[string]float64, len(s.GetFields()))
	for name, field := range s.GetFields() {
		known := false
		for _, a := range allowed {
			known = known || a == name
		}
		if !known {
			return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidCommand, name, key)
		}
		n, err := number(key+"."+name, field)
		if err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}

func vector(v *structpb.Value) (vec3, error) {
	fields, err := numbers(KeyTarget, v, "x", "y", "z")
	if err != nil {
		return vec3{}, err
	}
	x, okX := fields["x"]
	y, okY := fields["y"]
	if !okX || !okY {
		return vec3{}, fmt.Errorf("%w: %s needs x and y", ErrInvalidCommand, KeyTarget)
	}
	return vec3{X: x, Y: y, Z: fields["z"]}, nil
}
