package raylibview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/picking"
)

// inputState tracks an active mouse drag
type inputState struct {
	dragging bool
	panning  bool
}

// handleInput processes keyboard and mouse input. A left press is the
// pointer-down event: it is picked unless it lands on a button, and it
// also starts an orbit drag.
func (v *View) handleInput() {
	cam := v.ctl.State().Camera

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF) && v.ctl.Ready() {
		cam.FitToBounds(v.ctl.State().Registry.Bounds())
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.ctl.Dismiss()
	}

	mouse := rl.GetMousePosition()
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		target := app.TargetScene
		for _, rect := range v.buttonRects() {
			if rl.CheckCollisionPointRec(mouse, rect) {
				target = app.TargetButton
				break
			}
		}

		vp := picking.Viewport{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
		v.ctl.HandlePointerDown(app.PointerEvent{X: float64(mouse.X), Y: float64(mouse.Y), Target: target}, vp)

		if target == app.TargetScene {
			v.input.dragging = true
			v.input.panning = shiftPressed
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		v.input.dragging = false
		v.input.panning = false
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		switch {
		case (v.input.dragging && v.input.panning) || rl.IsMouseButtonDown(rl.MouseMiddleButton):
			cam.Pan(float64(delta.X), float64(delta.Y))
		case v.input.dragging:
			cam.Rotate(float64(delta.Y)*0.01, -float64(delta.X)*0.01)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Zoom(-float64(wheel) * 0.1)
	}
}

// buttonRects lays out the action buttons along the bottom-left edge, in
// the order of app.Buttons
func (v *View) buttonRects() []rl.Rectangle {
	const (
		width   = float32(96)
		height  = float32(32)
		spacing = float32(10)
		margin  = float32(16)
	)

	y := float32(rl.GetScreenHeight()) - height - margin
	rects := make([]rl.Rectangle, len(app.Buttons))
	for i := range app.Buttons {
		rects[i] = rl.Rectangle{X: margin + float32(i)*(width+spacing), Y: y, Width: width, Height: height}
	}
	return rects
}
