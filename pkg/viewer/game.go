// Package viewer draws a running flock with ebiten and lets the user tune it.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock/pkg/ui"
	"go.uber.org/zap"
)

// Pre-rendered source for batched triangle drawing
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

var (
	background  = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	targetColor = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	radiusColor = color.RGBA{R: 100, G: 200, B: 255, A: 60}
)

type Game struct {
	ctx       context.Context
	engine    *simulation.Engine
	cfg       *simulation.Config
	logger    *zap.Logger
	lastState *simulation.WorldSnapshot
	paused    bool

	// UI Controls
	panel *ui.UIPanel

	widgetGoalSeparation *ui.Slider
	widgetGoalAlignment  *ui.Slider
	widgetGoalCohesion   *ui.Slider
	widgetAlignment      *ui.Slider
	widgetCohesion       *ui.Slider
	widgetSeparation     *ui.Slider
	widgetTargeting      *ui.Slider
	widgetParallel       *ui.Checkbox
	widgetShowRadius     *ui.Checkbox
	buttonClearTarget    *ui.Button

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame builds the viewer for an already running engine.
func NewGame(ctx context.Context, engine *simulation.Engine, logger *zap.Logger) *Game {
	cfg := engine.Config()
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		ctx:       ctx,
		engine:    engine,
		cfg:       cfg,
		logger:    logger,
		lastState: &simulation.WorldSnapshot{}, // Avoid nil pointer
	}

	panel := ui.NewUIPanel("Flock", 10, 10, 240, cfg.WorldHeight-20)

	panel.AddSection("Radii")
	g.widgetGoalSeparation = panel.AddSlider("Separation", 0, 100, cfg.GoalSeparation)
	g.widgetGoalAlignment = panel.AddSlider("Alignment", 0, 200, cfg.GoalAlignment)
	g.widgetGoalCohesion = panel.AddSlider("Cohesion", 0, 200, cfg.GoalCohesion)
	panel.EndSection()

	panel.AddSection("Weights")
	g.widgetAlignment = panel.AddSlider("Alignment", 0, 5, cfg.Weights.Alignment)
	g.widgetCohesion = panel.AddSlider("Cohesion", 0, 5, cfg.Weights.Cohesion)
	g.widgetSeparation = panel.AddSlider("Separation", 0, 5, cfg.Weights.Separation)
	g.widgetTargeting = panel.AddSlider("Targeting", 0, 0.01, cfg.Weights.Targeting)
	panel.EndSection()

	panel.AddSection("Runtime")
	g.widgetParallel = panel.AddCheckbox("Parallel update", cfg.Parallel)
	g.widgetShowRadius = panel.AddCheckbox("Show separation radius", false)
	g.buttonClearTarget = panel.AddButton("Clear target", func() { g.send(g.engine.ClearTarget(g.ctx)) })
	g.buttonClearTarget.Disabled = cfg.Target == nil
	panel.EndSection()

	g.panel = panel
	return g
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	// Newest published state, previous one if none is ready
	if snap := g.engine.Latest(); snap != nil {
		g.lastState = snap
		g.buttonClearTarget.Disabled = snap.Target == nil
	}

	g.sendSettings()
	g.handleInput()

	if !g.paused {
		g.send(g.engine.Tick(g.ctx))
	}
	return nil
}

// sendSettings forwards the widgets the user just moved to the world.
func (g *Game) sendSettings() {
	if g.widgetGoalSeparation.Changed() || g.widgetGoalAlignment.Changed() || g.widgetGoalCohesion.Changed() {
		g.send(g.engine.SetRadii(g.ctx,
			g.widgetGoalSeparation.Value,
			g.widgetGoalAlignment.Value,
			g.widgetGoalCohesion.Value))
	}
	if g.widgetAlignment.Changed() || g.widgetCohesion.Changed() || g.widgetSeparation.Changed() || g.widgetTargeting.Changed() {
		g.send(g.engine.SetWeights(g.ctx, boids.Weights[float64]{
			Alignment:  g.widgetAlignment.Value,
			Cohesion:   g.widgetCohesion.Value,
			Separation: g.widgetSeparation.Value,
			Targeting:  g.widgetTargeting.Value,
		}))
	}
	if g.widgetParallel.Changed() {
		g.send(g.engine.SetScheduler(g.ctx, g.widgetParallel.Value, g.cfg.Workers))
	}
}

// handleInput: space pauses, a right click outside the panel moves the target.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		mx, my := ebiten.CursorPosition()
		if !g.panel.Contains(mx, my) {
			g.send(g.engine.SetTarget(g.ctx, geometry.NewVector3D(float64(mx), float64(my), g.cfg.WorldDepth/2)))
		}
	}
}

func (g *Game) send(err error) {
	if err != nil {
		g.logger.Warn("failed to reach the world", zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)

	for _, b := range g.lastState.Boids {
		if g.widgetShowRadius.Value {
			vector.StrokeCircle(screen,
				float32(b.Position.X), float32(b.Position.Y),
				float32(g.widgetGoalSeparation.Value), 1, radiusColor, true)
		}
		g.drawBoid(screen, b)
	}

	if t := g.lastState.Target; t != nil {
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), 6, 2, targetColor, true)
	}

	g.panel.Draw(screen)

	status := "running"
	if g.paused {
		status = "paused"
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nTick:   %d\nBoids:  %d\nStep:   %s\nUpdate: %.2fms\nDraw:   %.2fms\n\n%s",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		len(g.lastState.Boids),
		g.lastState.StepDuration.Round(time.Microsecond),
		g.updateAvg,
		g.drawAvg,
		status)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-160, 10)
}

// drawBoid draws a triangle pointing along the velocity. 3D boids are
// projected on the XY plane and get dimmer and smaller with depth.
func (g *Game) drawBoid(screen *ebiten.Image, b boids.BoidState[float64]) {
	angle := math.Atan2(b.Velocity.Y, b.Velocity.X)
	size, shade := 1.0, float32(1)
	if b.Kind == boids.Kind3D && g.cfg.WorldDepth > 0 {
		depth := math.Min(math.Max(b.Position.Z/g.cfg.WorldDepth, 0), 1)
		size = 1.3 - 0.6*depth
		shade = float32(1 - 0.6*depth)
	}

	x, y := b.Position.X, b.Position.Y
	tip := [2]float64{x + math.Cos(angle)*6*size, y + math.Sin(angle)*6*size}
	right := [2]float64{x + math.Cos(angle+2.5)*5*size, y + math.Sin(angle+2.5)*5*size}
	left := [2]float64{x + math.Cos(angle-2.5)*5*size, y + math.Sin(angle-2.5)*5*size}

	r, gr, bl := 0.4*shade, 0.8*shade, 1*shade
	vertices := make([]ebiten.Vertex, 0, 3)
	for _, p := range [][2]float64{tip, right, left} {
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: bl, ColorA: 1,
		})
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
