package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	panelBackground = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	panelTitle      = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	panelText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// PanelLines returns the label/value pairs shown for a record, in display order
func PanelLines(rec anatomy.PartRecord) [][2]string {
	return [][2]string{
		{"Name", rec.Name},
		{"Type", rec.Type},
		{"Action", rec.Action},
		{"Origin", rec.Origin},
	}
}

// DrawInfoPanel draws the record's four fields in a box at the top-left corner
func DrawInfoPanel(img *image.RGBA, rec anatomy.PartRecord) {
	face := basicfont.Face7x13
	const (
		padding    = 10
		lineHeight = 18
		margin     = 12
	)

	lines := PanelLines(rec)
	d := &font.Drawer{Dst: img, Face: face}

	width := 0
	for _, line := range lines {
		w := d.MeasureString(line[0] + ": " + line[1]).Ceil()
		if w > width {
			width = w
		}
	}
	box := image.Rect(margin, margin, margin+width+2*padding, margin+len(lines)*lineHeight+2*padding)
	box = box.Intersect(img.Bounds())
	draw.Draw(img, box, &image.Uniform{C: panelBackground}, image.Point{}, draw.Over)

	for i, line := range lines {
		baseline := margin + padding + i*lineHeight + face.Ascent
		d.Dot = fixed.P(margin+padding, baseline)
		d.Src = image.NewUniform(panelTitle)
		d.DrawString(line[0] + ": ")
		d.Src = image.NewUniform(panelText)
		d.DrawString(line[1])
	}
}
