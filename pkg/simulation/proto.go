package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrInvalidState is returned when a state message cannot be read back.
var ErrInvalidState = errors.New("invalid flock state message")

// StateToProto converts a flock state into the message the world answers Step with.
func StateToProto(s boids.FlockState[float64]) *structpb.Struct {
	list := make([]*structpb.Value, len(s.Boids))
	for i, b := range s.Boids {
		list[i] = structpb.NewStructValue(boidToProto(b))
	}
	fields := map[string]*structpb.Value{
		"boids":           structpb.NewListValue(&structpb.ListValue{Values: list}),
		KeyGoalSeparation: structpb.NewNumberValue(s.GoalSeparation),
		KeyGoalAlignment:  structpb.NewNumberValue(s.GoalAlignment),
		KeyGoalCohesion:   structpb.NewNumberValue(s.GoalCohesion),
	}
	if s.Target != nil {
		fields[KeyTarget] = vectorValue(*s.Target)
	}
	return &structpb.Struct{Fields: fields}
}

// StateFromProto reads back a message built by StateToProto.
func StateFromProto(p *structpb.Struct) (boids.FlockState[float64], error) {
	var s boids.FlockState[float64]
	if p == nil {
		return s, fmt.Errorf("%w: empty message", ErrInvalidState)
	}
	fields := p.GetFields()

	var err error
	if s.GoalSeparation, err = stateNumber(fields, KeyGoalSeparation); err != nil {
		return s, err
	}
	if s.GoalAlignment, err = stateNumber(fields, KeyGoalAlignment); err != nil {
		return s, err
	}
	if s.GoalCohesion, err = stateNumber(fields, KeyGoalCohesion); err != nil {
		return s, err
	}
	if v, ok := fields[KeyTarget]; ok {
		target, err := stateVector(v, KeyTarget)
		if err != nil {
			return s, err
		}
		s.Target = &target
	}

	list := fields["boids"].GetListValue()
	if list == nil {
		return s, fmt.Errorf("%w: boids must be a list", ErrInvalidState)
	}
	s.Boids = make([]boids.BoidState[float64], len(list.GetValues()))
	for i, v := range list.GetValues() {
		b, err := boidFromProto(v.GetStructValue())
		if err != nil {
			return s, fmt.Errorf("boid %d: %w", i, err)
		}
		s.Boids[i] = b
	}
	return s, nil
}

func boidToProto(b boids.BoidState[float64]) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind":         structpb.NewStringValue(b.Kind),
		"position":     vectorValue(b.Position),
		"velocity":     vectorValue(b.Velocity),
		"acceleration": vectorValue(b.Acceleration),
		"maxSpeed":     structpb.NewNumberValue(b.MaxSpeed),
		"maxForce":     structpb.NewNumberValue(b.MaxForce),
		"turnRadius":   structpb.NewNumberValue(b.TurnRadius),
		KeyWeights:     weightsValue(b.Weights),
	}}
}

func boidFromProto(p *structpb.Struct) (boids.BoidState[float64], error) {
	var b boids.BoidState[float64]
	if p == nil {
		return b, fmt.Errorf("%w: boid must be an object", ErrInvalidState)
	}
	fields := p.GetFields()
	b.Kind = fields["kind"].GetStringValue()

	var err error
	if b.Position, err = stateVector(fields["position"], "position"); err != nil {
		return b, err
	}
	if b.Velocity, err = stateVector(fields["velocity"], "velocity"); err != nil {
		return b, err
	}
	if b.Acceleration, err = stateVector(fields["acceleration"], "acceleration"); err != nil {
		return b, err
	}
	if b.MaxSpeed, err = stateNumber(fields, "maxSpeed"); err != nil {
		return b, err
	}
	if b.MaxForce, err = stateNumber(fields, "maxForce"); err != nil {
		return b, err
	}
	if b.TurnRadius, err = stateNumber(fields, "turnRadius"); err != nil {
		return b, err
	}

	w := fields[KeyWeights].GetStructValue().GetFields()
	if b.Weights.Alignment, err = stateNumber(w, "alignment"); err != nil {
		return b, err
	}
	if b.Weights.Cohesion, err = stateNumber(w, "cohesion"); err != nil {
		return b, err
	}
	if b.Weights.Separation, err = stateNumber(w, "separation"); err != nil {
		return b, err
	}
	if b.Weights.Targeting, err = stateNumber(w, "targeting"); err != nil {
		return b, err
	}
	return b, nil
}

func vectorValue(v vec3) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"x": structpb.NewNumberValue(v.X),
		"y": structpb.NewNumberValue(v.Y),
		"z": structpb.NewNumberValue(v.Z),
	}})
}

func weightsValue(w boids.Weights[float64]) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"alignment":  structpb.NewNumberValue(w.Alignment),
		"cohesion":   structpb.NewNumberValue(w.Cohesion),
		"separation": structpb.NewNumberValue(w.Separation),
		"targeting":  structpb.NewNumberValue(w.Targeting),
	}})
}

func stateNumber(fields map[string]*structpb.Value, key string) (float64, error) {
	n, ok := fields[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidState, key)
	}
	return n.NumberValue, nil
}

func stateVector(v *structpb.Value, key string) (vec3, error) {
	fields := v.GetStructValue().GetFields()
	if fields == nil {
		return vec3{}, fmt.Errorf("%w: %s must be a vector", ErrInvalidState, key)
	}
	var out vec3
	var err error
	if out.X, err = stateNumber(fields, "x"); err != nil {
		return out, err
	}
	if out.Y, err = stateNumber(fields, "y"); err != nil {
		return out, err
	}
	if out.Z, err = stateNumber(fields, "z"); err != nil {
		return out, err
	}
	return out, nil
}
