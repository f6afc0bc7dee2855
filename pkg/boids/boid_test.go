package boids

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	vec2 = geometry.Vector2D[float64]
	vec3 = geometry.Vector3D[float64]
)

func boid2D(x, y, vx, vy float64) *Boid2D[float64] {
	b := NewBoid2DWithAngle(vec2{X: x, Y: y}, 0)
	b.Vel = vec2{X: vx, Y: vy}
	return b
}

func boid3D(pos, vel vec3) *Boid3D[float64] {
	return NewBoid3DWithVelocity(pos, vel)
}

func TestNewBoid2DWithAngle(t *testing.T) {
	b := NewBoid2DWithAngle(vec2{X: 3, Y: 4}, math.Pi/2)

	assert.Equal(t, vec2{X: 3, Y: 4}, b.Pos)
	assert.InDelta(t, 0, b.Vel.X, 1e-12)
	assert.InDelta(t, 1, b.Vel.Y, 1e-12)
	assert.Equal(t, vec2{}, b.Acc)
	assert.Equal(t, 2.0, b.MaxSpeed)
	assert.Equal(t, 0.03, b.MaxForce)
	assert.Equal(t, 2.0, b.TurnRadius)
	assert.Equal(t, DefaultWeights[float64](), b.Weights())
	assert.Equal(t, 2, b.Dimensions())
}

func TestNewBoid_RandomHeadingIsUnitSpeed(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 100; i++ {
		b2 := NewBoid2DRand(vec2{}, rng)
		assert.InDelta(t, 1, b2.Vel.Len(), 1e-12)

		b3 := NewBoid3DRand(vec3{}, rng)
		assert.InDelta(t, 1, b3.Vel.Len(), 1e-12)
		assert.Zero(t, b3.Vel.Z)
	}
	assert.InDelta(t, 1, NewBoid2D(vec2{}).Vel.Len(), 1e-12)
	assert.InDelta(t, 1, NewBoid3D(vec3{}).Vel.Len(), 1e-12)
}

func TestNewBoidRand_IsReproducible(t *testing.T) {
	a := NewBoid2DRand(vec2{}, rand.New(rand.NewPCG(1, 2)))
	b := NewBoid2DRand(vec2{}, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a.Vel, b.Vel)
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights[float32]()
	assert.Equal(t, float32(1.5), w.Alignment)
	assert.Equal(t, float32(1.0), w.Cohesion)
	assert.Equal(t, float32(1.0), w.Separation)
	assert.Equal(t, float32(0.0003), w.Targeting)
}

func TestSetWeights(t *testing.T) {
	b := boid2D(0, 0, 1, 0)
	w := Weights[float64]{Alignment: 2, Cohesion: 3, Separation: 4, Targeting: 5}
	b.SetWeights(w)
	assert.Equal(t, w, b.Weights())
	assert.Equal(t, w, b.WithForce(vec3{}).Weights(), "weights travel with the new state")
}

func TestSeparate_TwoAgentsPushApartSymmetrically(t *testing.T) {
	left := boid2D(0, 0, 1, 0)
	right := boid2D(10, 0, 1, 0)
	f := NewFlock(WithBoids[float64](left, right))

	l := left.Separate(f)
	r := right.Separate(f)

	assert.Less(t, l.X, 0.0, "left agent is pushed towards -x")
	assert.Greater(t, r.X, 0.0, "right agent is pushed towards +x")
	assert.Zero(t, l.Y)
	assert.Zero(t, r.Y)
	assert.InDelta(t, l.Len(), r.Len(), 1e-12)
	assert.InDelta(t, left.MaxForce, l.Len(), 1e-12)
}

func TestSeparate_OutsideRadiusIsZero(t *testing.T) {
	a := boid2D(0, 0, 1, 0)
	b := boid2D(30, 0, 1, 0)
	f := NewFlock(WithBoids[float64](a, b))

	assert.Equal(t, vec3{}, a.Separate(f))
	assert.Equal(t, vec3{}, b.Separate(f))
}

func TestBehaviours_SelfAndCoincidentAgentsAreIgnored(t *testing.T) {
	t.Run("alone", func(t *testing.T) {
		a := boid3D(vec3{X: 1, Y: 2, Z: 3}, vec3{X: 1})
		f := NewFlock(WithBoids[float64](a))

		assert.Equal(t, vec3{}, a.Separate(f))
		assert.Equal(t, vec3{}, a.Align(f))
		assert.Equal(t, vec3{}, a.Cohesion(f))
	})

	t.Run("two agents on the same spot", func(t *testing.T) {
		a := boid2D(5, 5, 1, 0)
		b := boid2D(5, 5, 0, 1)
		f := NewFlock(WithBoids[float64](a, b))

		for _, x := range []*Boid2D[float64]{a, b} {
			assert.Equal(t, vec3{}, x.Separate(f))
			assert.Equal(t, vec3{}, x.Align(f))
			assert.Equal(t, vec3{}, x.Cohesion(f))
			assert.True(t, x.Update(f).Position().IsFinite())
		}
	})

	t.Run("coincident pair still reacts to a third agent", func(t *testing.T) {
		a := boid2D(0, 0, 1, 0)
		b := boid2D(0, 0, 1, 0)
		c := boid2D(5, 0, 1, 0)
		f := NewFlock(WithBoids[float64](a, b, c))

		assert.Equal(t, a.Separate(f), b.Separate(f))
		assert.Less(t, a.Separate(f).X, 0.0)
	})
}

func TestAlign_SteersTowardsNeighborHeading(t *testing.T) {
	me := boid2D(0, 0, 0, 1)
	other := boid2D(5, 0, 1, 0)
	f := NewFlock(WithBoids[float64](me, other))

	got := me.Align(f)
	// desired (2,0) - velocity (0,1), limited to max force
	want := vec3{X: 2, Y: -1}.Normalize().Mul(me.MaxForce)
	assert.True(t, got.Eq(want), "got %v want %v", got, want)
}

func TestCohesion_SteersTowardsCenterOfMass(t *testing.T) {
	me := boid2D(0, 0, 0, 0)
	f := NewFlock(WithBoids[float64](me, boid2D(10, 10, 0, 0), boid2D(10, -10, 0, 0)))

	got := me.Cohesion(f)
	assert.InDelta(t, me.MaxForce, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
}

func TestBehaviours_NeverExceedMaxForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	f := NewFlock[float64]()
	for i := 0; i < 60; i++ {
		b := NewBoid3DRand(vec3{X: rng.Float64() * 60, Y: rng.Float64() * 60, Z: rng.Float64() * 60}, rng)
		b.Vel = b.Vel.Mul(rng.Float64() * 5)
		f.Add(b)
	}
	f.SetTarget(vec3{X: 30, Y: 30, Z: 30})

	for i, b := range f.Boids {
		maxForce := b.(*Boid3D[float64]).MaxForce
		for name, force := range map[string]vec3{
			"separate": b.Separate(f),
			"align":    b.Align(f),
			"cohesion": b.Cohesion(f),
			"seek":     b.Seek(f),
		} {
			assert.LessOrEqual(t, force.Len(), maxForce+1e-12, "boid %d %s", i, name)
			assert.True(t, force.IsFinite(), "boid %d %s", i, name)
		}
	}
}

func TestSeek(t *testing.T) {
	me := boid2D(0, 0, 0, 1)

	t.Run("no target", func(t *testing.T) {
		f := NewFlock(WithBoids[float64](me))
		assert.Equal(t, vec3{}, me.Seek(f))
	})

	t.Run("target ahead on x", func(t *testing.T) {
		f := NewFlock(WithBoids[float64](me), WithTarget(vec3{X: 100}))
		got := me.Seek(f)
		want := vec3{X: 2, Y: -1}.Normalize().Mul(me.MaxForce)
		assert.True(t, got.Eq(want), "got %v want %v", got, want)
	})

	t.Run("target on the boid", func(t *testing.T) {
		f := NewFlock(WithBoids[float64](me), WithTarget(vec3{}))
		assert.Equal(t, vec3{}, me.Seek(f))
	})
}

func TestSteeringForce_TargetingOnlyWithTarget(t *testing.T) {
	me := boid2D(0, 0, 0, 1)
	other := boid2D(10, 0, 1, 0)
	f := NewFlock(WithBoids[float64](me, other))

	without := SteeringForce[float64](me, f)

	f.SetTarget(vec3{X: -100})
	with := SteeringForce[float64](me, f)

	want := without.Add(me.Seek(f).Mul(me.Weights().Targeting))
	assert.True(t, with.Eq(want), "got %v want %v", with, want)
	assert.NotEqual(t, without, with)
}

func TestWithForce(t *testing.T) {
	t.Run("leaves receiver untouched", func(t *testing.T) {
		b := boid2D(1, 1, 1, 0)
		before := *b
		next := b.WithForce(vec3{X: 0.5, Y: 0.5})

		assert.Equal(t, before, *b)
		assert.Equal(t, vec3{X: 2.5, Y: 1.5}, next.Position())
		assert.Equal(t, vec3{X: 1.5, Y: 0.5}, next.Velocity())
		assert.Equal(t, vec3{}, next.Acceleration())
	})

	t.Run("resets acceleration", func(t *testing.T) {
		b := boid3D(vec3{}, vec3{X: 1})
		b.Acc = vec3{X: 9, Y: 9, Z: 9}
		assert.Equal(t, vec3{}, b.WithForce(vec3{}).Acceleration())
	})

	t.Run("2D agent ignores the Z part of a force", func(t *testing.T) {
		b := boid2D(0, 0, 1, 0)
		assert.Equal(t, b.WithForce(vec3{X: 0.1, Y: 0.2}), b.WithForce(vec3{X: 0.1, Y: 0.2, Z: 50}))
	})
}

func TestWithForce_SpeedNeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 24))
	for i := 0; i < 1000; i++ {
		vel := vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Mul(rng.Float64() * 100)
		force := vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Mul(rng.Float64() * 1000)

		b3 := boid3D(vec3{}, vel)
		b3.MaxSpeed = rng.Float64() * 10
		next3 := b3.WithForce(force)
		require.LessOrEqual(t, next3.Velocity().Len(), b3.MaxSpeed*(1+1e-12))

		b2 := boid2D(0, 0, vel.X, vel.Y)
		b2.MaxSpeed = b3.MaxSpeed
		next2 := b2.WithForce(force)
		require.LessOrEqual(t, next2.Velocity().Len(), b2.MaxSpeed*(1+1e-12))
	}
}

func TestBoid2D_NoZDriftAmongSymmetric3DNeighbors(t *testing.T) {
	me := boid2D(0, 0, 1, 0)
	f := NewFlock(WithBoids[float64](
		me,
		boid3D(vec3{X: 3, Z: 4}, vec3{X: 1, Z: 1}),
		boid3D(vec3{X: 3, Z: -4}, vec3{X: 1, Z: -1}),
	))
	f.SetTarget(vec3{X: 50, Z: 50})

	for _, force := range []vec3{me.Separate(f), me.Align(f), me.Cohesion(f), me.Seek(f)} {
		assert.Zero(t, force.Z)
	}

	var b Boid[float64] = me
	for i := 0; i < 20; i++ {
		b = b.Update(f)
		require.Zero(t, b.Position().Z)
		require.Zero(t, b.Velocity().Z)
	}
}

func TestBoid2D_MeasuresNeighborsInThePlane(t *testing.T) {
	me := boid2D(0, 0, 1, 0)
	// 100 units away in Z but 5 units away in the plane
	other := boid3D(vec3{X: 5, Z: 100}, vec3{X: 1})
	f := NewFlock(WithBoids[float64](me, other))

	assert.NotEqual(t, vec3{}, me.Separate(f))
	assert.Equal(t, vec3{}, other.Separate(f), "the 3D agent sees the full distance")
}

func TestWithPosition(t *testing.T) {
	b2 := boid2D(1, 2, 1, 0)
	moved2 := b2.WithPosition(vec3{X: 7, Y: 8, Z: 9})
	assert.Equal(t, vec3{X: 7, Y: 8}, moved2.Position())
	assert.Equal(t, b2.Velocity(), moved2.Velocity())
	assert.Equal(t, vec2{X: 1, Y: 2}, b2.Pos)

	b3 := boid3D(vec3{X: 1}, vec3{Y: 1})
	moved3 := b3.WithPosition(vec3{X: 7, Y: 8, Z: 9})
	assert.Equal(t, vec3{X: 7, Y: 8, Z: 9}, moved3.Position())
	assert.Equal(t, vec3{X: 1}, b3.Pos)
}
