package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	actorSystemName = "FlockWorld"
	worldActorName  = "world"

	// DefaultStepTimeout bounds Step when ctx carries no deadline.
	DefaultStepTimeout = time.Minute
)

var (
	ErrUnexpectedResponse = errors.New("unexpected response from world")
	ErrInvalidTicks       = errors.New("invalid tick count")
)

// Engine runs a flock inside a world actor and is the only way hosts talk to it.
type Engine struct {
	cfg       *Config
	logger    *zap.Logger
	system    actor.ActorSystem
	worldPID  *actor.PID
	snapshots chan *WorldSnapshot
}

// NewEngine spawns the flock described by cfg and starts its world actor.
func NewEngine(ctx context.Context, cfg *Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	flock, err := NewFlock(cfg, logger)
	if err != nil {
		return nil, err
	}

	system, err := actor.NewActorSystem(actorSystemName,
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking, Latest drains it
	snapshots := make(chan *WorldSnapshot, 10)
	worldPID, err := system.Spawn(ctx, worldActorName, NewWorldActor(flock, cfg, snapshots, logger))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		logger:    logger,
		system:    system,
		worldPID:  worldPID,
		snapshots: snapshots,
	}, nil
}

func (e *Engine) Config() *Config { return e.cfg }

// Snapshots delivers the state published after ticks. Frames are dropped
// while nobody reads.
func (e *Engine) Snapshots() <-chan *WorldSnapshot { return e.snapshots }

// Latest drains the pending snapshots and returns the newest, or nil when
// none was published since the last call.
func (e *Engine) Latest() *WorldSnapshot {
	var newest *WorldSnapshot
	for {
		select {
		case snap := <-e.snapshots:
			newest = snap
		default:
			return newest
		}
	}
}

// Tick asks the world for one more tick without waiting for it.
func (e *Engine) Tick(ctx context.Context) error {
	return actor.Tell(ctx, e.worldPID, &emptypb.Empty{})
}

// Step runs n ticks and returns the resulting flock state.
func (e *Engine) Step(ctx context.Context, n int) (boids.FlockState[float64], error) {
	var state boids.FlockState[float64]
	if n < 0 || uint64(n) > math.MaxUint32 {
		return state, fmt.Errorf("%w: cannot run %d ticks in one step", ErrInvalidTicks, n)
	}

	timeout := DefaultStepTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return state, fmt.Errorf("failed to step world: %w", context.DeadlineExceeded)
		}
	}
	if err := ctx.Err(); err != nil {
		return state, fmt.Errorf("failed to step world: %w", err)
	}
	resp, err := actor.Ask(ctx, e.worldPID, wrapperspb.UInt32(uint32(n)), timeout)
	if err != nil {
		return state, fmt.Errorf("failed to step world: %w", err)
	}
	msg, ok := resp.(*structpb.Struct)
	if !ok {
		return state, fmt.Errorf("%w: %T", ErrUnexpectedResponse, resp)
	}
	return StateFromProto(msg)
}

// Apply checks cmd and sends it to the world, see the Key constants.
func (e *Engine) Apply(ctx context.Context, cmd *structpb.Struct) error {
	if _, err := parseCommand(cmd); err != nil {
		return err
	}
	return actor.Tell(ctx, e.worldPID, cmd)
}

func (e *Engine) SetRadii(ctx context.Context, separation, alignment, cohesion float64) error {
	return e.Apply(ctx, RadiiCommand(separation, alignment, cohesion))
}

func (e *Engine) SetTarget(ctx context.Context, target vec3) error {
	return e.Apply(ctx, TargetCommand(&target))
}

func (e *Engine) ClearTarget(ctx context.Context) error {
	return e.Apply(ctx, TargetCommand(nil))
}

func (e *Engine) SetWeights(ctx context.Context, w boids.Weights[float64]) error {
	return e.Apply(ctx, WeightsCommand(w))
}

func (e *Engine) SetScheduler(ctx context.Context, parallel bool, workers int) error {
	return e.Apply(ctx, SchedulerCommand(parallel, workers))
}

// Stop shuts the actor system down.
func (e *Engine) Stop(ctx context.Context) error {
	return e.system.Stop(ctx)
}
