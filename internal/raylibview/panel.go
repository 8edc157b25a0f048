package raylibview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// Panel is the on-screen info panel, drawn each frame while visible
type Panel struct {
	record  anatomy.PartRecord
	visible bool
}

// NewPanel creates a hidden panel
func NewPanel() *Panel {
	return &Panel{}
}

func (p *Panel) Show(record anatomy.PartRecord) {
	p.record = record
	p.visible = true
}

func (p *Panel) Hide() {
	p.visible = false
}

// draw renders the panel in the top-left corner
func (p *Panel) draw(font rl.Font) {
	if !p.visible {
		return
	}

	const (
		x          = float32(16)
		y          = float32(16)
		padding    = float32(12)
		fontSize   = float32(18)
		lineHeight = float32(26)
		maxWidth   = float32(420)
	)

	lines := viewer.PanelLines(p.record)

	width := float32(0)
	for _, line := range lines {
		size := rl.MeasureTextEx(font, line[0]+": "+line[1], fontSize, 1)
		width = max(width, size.X)
	}
	width = min(width, maxWidth)

	box := rl.Rectangle{X: x, Y: y, Width: width + padding*2, Height: float32(len(lines))*lineHeight + padding*2}
	rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 200))
	rl.DrawRectangleLinesEx(box, 1, rl.NewColor(90, 90, 100, 255))

	ty := y + padding
	for _, line := range lines {
		label := line[0] + ": "
		rl.DrawTextEx(font, label, rl.Vector2{X: x + padding, Y: ty}, fontSize, 1, rl.Yellow)
		labelWidth := rl.MeasureTextEx(font, label, fontSize, 1).X
		rl.DrawTextEx(font, line[1], rl.Vector2{X: x + padding + labelWidth, Y: ty}, fontSize, 1, rl.White)
		ty += lineHeight
	}
}
