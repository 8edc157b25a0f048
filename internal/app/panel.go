package app

import "github.com/philipparndt/goanatomy/pkg/anatomy"

// InfoPanel displays the record of the selected part. Frontends implement
// it with their own widgets.
type InfoPanel interface {
	Show(record anatomy.PartRecord)
	Hide()
}

// HeadlessPanel keeps the panel state in memory. It backs the render
// command and the tests.
type HeadlessPanel struct {
	Record  anatomy.PartRecord
	Visible bool
}

func (p *HeadlessPanel) Show(record anatomy.PartRecord) {
	p.Record = record
	p.Visible = true
}

func (p *HeadlessPanel) Hide() {
	p.Record = anatomy.PartRecord{}
	p.Visible = false
}
