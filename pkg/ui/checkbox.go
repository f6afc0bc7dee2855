package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a flock setting. The host polls Changed once per frame
// and forwards the new Value to the engine.
type Checkbox struct {
	Label   string
	Value   bool
	X, Y    float64
	Size    float64
	press   press
	changed bool
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// Changed reports whether the last Update toggled the value.
func (c *Checkbox) Changed() bool { return c.changed }

// Update checks for mouse interaction
func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.handle(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (c *Checkbox) handle(mx, my int, down bool) {
	c.changed = c.press.click(inside(mx, my, c.X, c.Y, c.Size, c.Size), down)
	if c.changed {
		c.Value = !c.Value
	}
}

// Draw renders the checkbox
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
}
