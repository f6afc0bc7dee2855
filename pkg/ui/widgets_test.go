package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButton_ClicksOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(10, 10, 100, 18, "Clear target", func() { clicks++ })

	assert.True(t, b.handle(20, 15, true))
	assert.False(t, b.handle(20, 15, true), "holding the mouse does not repeat")
	b.handle(20, 15, false)
	assert.True(t, b.handle(20, 15, true))
	assert.False(t, b.handle(500, 15, true), "outside the button")
	assert.Equal(t, 2, clicks)
}

func TestButton_DisabledIgnoresClicks(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 100, 18, "Clear target", func() { clicks++ })
	b.Disabled = true

	assert.False(t, b.handle(5, 5, true))
	b.handle(5, 5, false)

	b.Disabled = false
	assert.True(t, b.handle(5, 5, true))
	assert.Equal(t, 1, clicks)
}

func TestCheckbox_TogglesOncePerPress(t *testing.T) {
	c := NewCheckbox(0, 0, "Parallel update", false)

	c.handle(8, 8, true)
	assert.True(t, c.Value)
	assert.True(t, c.Changed())

	c.handle(8, 8, true)
	assert.True(t, c.Value)
	assert.False(t, c.Changed())

	c.handle(8, 8, false)
	c.handle(8, 8, true)
	assert.False(t, c.Value)
	assert.True(t, c.Changed())

	c.handle(8, 8, false)
	c.handle(40, 40, true)
	assert.False(t, c.Value)
	assert.False(t, c.Changed())
}
