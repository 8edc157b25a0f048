package fyneview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
)

// Panel shows the selected part's record in four labels
type Panel struct {
	name   *widget.Label
	kind   *widget.Label
	action *widget.Label
	origin *widget.Label

	content *fyne.Container
}

// NewPanel creates a hidden panel
func NewPanel() *Panel {
	p := &Panel{
		name:   widget.NewLabel(""),
		kind:   widget.NewLabel(""),
		action: widget.NewLabel(""),
		origin: widget.NewLabel(""),
	}
	p.name.TextStyle = fyne.TextStyle{Bold: true}
	p.action.Wrapping = fyne.TextWrapWord
	p.origin.Wrapping = fyne.TextWrapWord

	p.content = container.NewVBox(
		p.name,
		widget.NewSeparator(),
		p.kind,
		p.action,
		p.origin,
	)
	p.content.Hide()
	return p
}

// Content is the panel's canvas object
func (p *Panel) Content() fyne.CanvasObject {
	return p.content
}

func (p *Panel) Show(record anatomy.PartRecord) {
	p.name.SetText(record.Name)
	p.kind.SetText("Type: " + record.Type)
	p.action.SetText("Action: " + record.Action)
	p.origin.SetText("Origin: " + record.Origin)
	p.content.Show()
}

func (p *Panel) Hide() {
	p.content.Hide()
}

// Visible reports whether the panel is shown
func (p *Panel) Visible() bool {
	return p.content.Visible()
}
