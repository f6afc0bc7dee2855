package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// press turns a held mouse button into a single click per press.
type press struct {
	held bool
}

// click reports true only on the frame the button goes down over the widget.
func (p *press) click(over, down bool) bool {
	if !over || !down {
		p.held = false
		return false
	}
	if p.held {
		return false
	}
	p.held = true
	return true
}

func inside(mx, my int, x, y, w, h float64) bool {
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}

// Button runs OnClick once per press. A disabled button is greyed out and
// ignores clicks, the viewer uses it for actions that have nothing to act on.
type Button struct {
	Label    string
	X, Y     float64
	Width    float64
	Height   float64
	OnClick  func()
	Disabled bool
	press    press

	BGColor       color.RGBA
	HoverColor    color.RGBA
	DisabledColor color.RGBA
	TextColor     color.RGBA
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:         label,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		OnClick:       onClick,
		BGColor:       color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor:    color.RGBA{R: 100, G: 150, B: 220, A: 255},
		DisabledColor: color.RGBA{R: 70, G: 70, B: 80, A: 255},
		TextColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Update checks for mouse interaction
func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.handle(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// handle returns true when the press fired OnClick.
func (b *Button) handle(mx, my int, down bool) bool {
	over := !b.Disabled && inside(mx, my, b.X, b.Y, b.Width, b.Height)
	if !b.press.click(over, down) || b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()

	bgColor := b.BGColor
	switch {
	case b.Disabled:
		bgColor = b.DisabledColor
	case inside(mx, my, b.X, b.Y, b.Width, b.Height):
		bgColor = b.HoverColor
	}

	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bgColor, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+6), int(b.Y+2))
}
