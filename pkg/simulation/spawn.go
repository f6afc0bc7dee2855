package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"go.uber.org/zap"
)

type vec3 = geometry.Vector3D[float64]

// NewRand returns the generator a flock is spawned with. A zero seed draws a
// random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewFlock spawns cfg.NumBoids boids uniformly inside the world with random
// headings, and configures the flock radii, target and scheduler from cfg.
func NewFlock(cfg *Config, logger *zap.Logger) (*boids.Flock[float64], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rng := NewRand(cfg.Seed)
	opts := []boids.Option[float64]{
		boids.WithRadii(cfg.GoalSeparation, cfg.GoalAlignment, cfg.GoalCohesion),
		boids.WithScheduler[float64](cfg.Scheduler()),
		boids.WithLogger[float64](logger),
	}
	if cfg.Target != nil {
		opts = append(opts, boids.WithTarget(*cfg.Target))
	}
	f := boids.NewFlock(opts...)

	for i := 0; i < cfg.NumBoids; i++ {
		f.Add(spawnBoid(cfg, rng))
	}

	logger.Info("flock spawned",
		zap.Int("boids", f.Len()),
		zap.Int("dimensions", cfg.Dimensions),
		zap.Stringer("scheduler", f.Scheduler()))
	return f, f.Validate()
}

func spawnBoid(cfg *Config, rng *rand.Rand) boids.Boid[float64] {
	x := rng.Float64() * cfg.WorldWidth
	y := rng.Float64() * cfg.WorldHeight

	if cfg.Dimensions == 3 {
		b := boids.NewBoid3DWithVelocity(vec3{X: x, Y: y, Z: rng.Float64() * cfg.WorldDepth}, randomDirection(rng))
		b.MaxSpeed, b.MaxForce, b.TurnRadius = cfg.MaxSpeed, cfg.MaxForce, cfg.TurnRadius
		b.SetWeights(cfg.Weights)
		return b
	}

	b := boids.NewBoid2DRand(geometry.Vector2D[float64]{X: x, Y: y}, rng)
	b.MaxSpeed, b.MaxForce, b.TurnRadius = cfg.MaxSpeed, cfg.MaxForce, cfg.TurnRadius
	b.SetWeights(cfg.Weights)
	return b
}

// randomDirection returns a unit vector uniformly distributed on the sphere.
func randomDirection(rng *rand.Rand) vec3 {
	z := rng.Float64()*2 - 1
	phi := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}
