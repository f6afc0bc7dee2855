package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestStateProto_RoundTrip(t *testing.T) {
	for _, dims := range []int{2, 3} {
		cfg := testConfig(dims)
		cfg.Target = &vec3{X: 5, Y: 6, Z: 7}
		f, err := NewFlock(cfg, nil)
		require.NoError(t, err)
		f.Step(3)

		want := f.State()
		got, err := StateFromProto(StateToProto(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		restored, err := boids.FromState(got)
		require.NoError(t, err)
		restored.Update()
		f.Update()
		assert.Equal(t, f.State(), restored.State())
	}
}

func TestStateProto_WithoutTarget(t *testing.T) {
	f, err := NewFlock(testConfig(2), nil)
	require.NoError(t, err)

	msg := StateToProto(f.State())
	assert.NotContains(t, msg.GetFields(), KeyTarget)

	got, err := StateFromProto(msg)
	require.NoError(t, err)
	assert.Nil(t, got.Target)
}

func TestStateFromProto_Rejects(t *testing.T) {
	_, err := StateFromProto(nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"no radii", map[string]interface{}{"boids": []interface{}{}}},
		{"no boids", map[string]interface{}{KeyGoalSeparation: 1, KeyGoalAlignment: 1, KeyGoalCohesion: 1}},
		{"boid as number", map[string]interface{}{
			KeyGoalSeparation: 1, KeyGoalAlignment: 1, KeyGoalCohesion: 1,
			"boids": []interface{}{3},
		}},
		{"target without z", map[string]interface{}{
			KeyGoalSeparation: 1, KeyGoalAlignment: 1, KeyGoalCohesion: 1,
			"boids":   []interface{}{},
			KeyTarget: map[string]interface{}{"x": 1, "y": 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)
			_, err = StateFromProto(msg)
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}
