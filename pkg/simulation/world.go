package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldSnapshot is what the world publishes after every tick.
type WorldSnapshot struct {
	Tick    uint64
	Boids   []boids.BoidState[float64]
	Target  *vec3
	Wrapped int // boids teleported to the opposite edge during this tick

	StepDuration time.Duration
}

// WorldActor owns the flock. Every message is handled one at a time, so the
// flock is never updated and reconfigured concurrently.
//
// Messages:
//   - *emptypb.Empty runs one tick and publishes a snapshot.
//   - *wrapperspb.UInt32Value runs that many ticks and answers with the
//     flock state as a *structpb.Struct built by StateToProto.
//   - *structpb.Struct reconfigures the flock, see the Key constants.
type WorldActor struct {
	flock  *boids.Flock[float64]
	bounds Bounds
	wrap   bool

	// Communication with UI
	snapshotCh chan<- *WorldSnapshot
	logger     *zap.Logger

	// --- Benchmark Stats ---
	tickCount    int
	stepDuration time.Duration
	lastLogTime  time.Time
}

// NewWorldActor creates the world logic unit
func NewWorldActor(flock *boids.Flock[float64], cfg *Config, snapshotCh chan<- *WorldSnapshot, logger *zap.Logger) *WorldActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorldActor{
		flock:       flock,
		bounds:      cfg.Bounds(),
		wrap:        cfg.Wrap,
		snapshotCh:  snapshotCh,
		logger:      logger,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	w.logger.Info("world starting", zap.Int("boids", w.flock.Len()))
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		w.logger.Info("world started", zap.Stringer("scheduler", w.flock.Scheduler()))

	case *emptypb.Empty:
		w.logBenchmarks()
		w.pushSnapshot(w.step())

	case *wrapperspb.UInt32Value:
		var snap *WorldSnapshot
		for i := uint32(0); i < msg.GetValue(); i++ {
			snap = w.step()
		}
		if snap != nil {
			w.pushSnapshot(snap)
		}
		ctx.Response(StateToProto(w.flock.State()))

	case *structpb.Struct:
		if err := w.apply(msg); err != nil {
			w.logger.Warn("command rejected", zap.Error(err))
		}

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	w.logger.Info("world stopped", zap.Uint64("tick", w.flock.Tick()))
	return nil
}

// step advances the flock by one tick, wraps it and builds the snapshot.
func (w *WorldActor) step() *WorldSnapshot {
	start := time.Now()
	w.flock.Update()
	wrapped := 0
	if w.wrap {
		wrapped = w.bounds.Wrap(w.flock)
	}
	elapsed := time.Since(start)

	w.tickCount++
	w.stepDuration += elapsed
	return w.buildSnapshot(wrapped, elapsed)
}

func (w *WorldActor) apply(msg *structpb.Struct) error {
	cmd, err := parseCommand(msg)
	if err != nil {
		return err
	}
	cmd.apply(w.flock)
	w.logger.Debug("command applied",
		zap.Float64("goalSeparation", w.flock.GoalSeparation),
		zap.Float64("goalAlignment", w.flock.GoalAlignment),
		zap.Float64("goalCohesion", w.flock.GoalCohesion),
		zap.Stringer("scheduler", w.flock.Scheduler()))
	return nil
}

func (w *WorldActor) logBenchmarks() {
	if time.Since(w.lastLogTime) >= time.Second {
		var avg time.Duration
		if w.tickCount > 0 {
			avg = w.stepDuration / time.Duration(w.tickCount)
		}
		w.logger.Info("tick rate",
			zap.Int("ticksPerSecond", w.tickCount),
			zap.Duration("avgStep", avg),
			zap.Int("boids", w.flock.Len()))
		w.tickCount = 0
		w.stepDuration = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot(snap *WorldSnapshot) {
	select {
	case w.snapshotCh <- snap:
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) buildSnapshot(wrapped int, elapsed time.Duration) *WorldSnapshot {
	state := w.flock.State()
	return &WorldSnapshot{
		Tick:         w.flock.Tick(),
		Boids:        state.Boids,
		Target:       state.Target,
		Wrapped:      wrapped,
		StepDuration: elapsed,
	}
}
