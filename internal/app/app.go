// Package app is the interaction controller shared by the frontends: it
// turns pointer and button events into selection changes, part actions
// and info panel updates.
package app

import (
	"fmt"

	"github.com/philipparndt/goanatomy/internal/actions"
	"github.com/philipparndt/goanatomy/internal/picking"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// Options tune controller behaviour
type Options struct {
	SkipHidden bool // exclude hidden meshes from picking
	AutoFit    bool // frame each newly loaded model
}

// Controller owns the application state
type Controller struct {
	state    State
	panel    InfoPanel
	resolver picking.Resolver
	opts     Options

	loaded chan loadResult
	reload chan struct{}
}

// NewController creates a controller for an already loaded metadata store
func NewController(store *anatomy.Store, cam *viewer.Camera, panel InfoPanel, opts Options) *Controller {
	if panel == nil {
		panel = &HeadlessPanel{}
	}
	return &Controller{
		state:    State{Store: store, Camera: cam},
		panel:    panel,
		resolver: picking.Resolver{SkipHidden: opts.SkipHidden},
		opts:     opts,
		loaded:   make(chan loadResult, 1),
		reload:   make(chan struct{}, 1),
	}
}

// State exposes the state for rendering
func (c *Controller) State() *State {
	return &c.state
}

// Ready reports whether a model is installed and picks can resolve
func (c *Controller) Ready() bool {
	return c.state.Registry != nil
}

// SetModel installs a registry synchronously, replacing any previous one.
// The selection is cleared and the panel hidden.
func (c *Controller) SetModel(reg *scene.Registry) {
	c.state.Registry = reg
	c.state.Selection.Clear()
	c.panel.Hide()

	if reg == nil {
		return
	}
	for _, name := range reg.Duplicates() {
		fmt.Printf("Warning: duplicate mesh name %q, only the first is annotated\n", name)
	}
	if c.opts.AutoFit && c.state.Camera != nil {
		c.state.Camera.FitToBounds(reg.Bounds())
	}
}

// HandlePointerDown resolves a pointer-down on the scene. Events on
// controls are ignored, as are events before the model has loaded. It
// reports whether the event was handled.
func (c *Controller) HandlePointerDown(ev PointerEvent, vp picking.Viewport) bool {
	if ev.Target != TargetScene || !c.Ready() {
		return false
	}

	mesh, hit := c.resolver.Pick(c.state.Registry, c.state.Camera, vp, ev.X, ev.Y)
	c.state.Selection.Resolve(c.state.Registry, c.state.Store, mesh, hit)
	c.syncPanel()
	return true
}

// HandleButton runs a part action and reports whether it changed anything
func (c *Controller) HandleButton(b Button) bool {
	ctl := c.actions()

	switch b {
	case ButtonFade:
		if !ctl.Fade() {
			return false
		}
	case ButtonHide:
		if !ctl.Hide() {
			return false
		}
	case ButtonReset:
		// Selection and panel stay as they are
		return ctl.Reset()
	default:
		return false
	}

	c.syncPanel()
	return true
}

// Dismiss clears the selection and hides the panel
func (c *Controller) Dismiss() bool {
	if !c.actions().Dismiss() {
		return false
	}
	c.syncPanel()
	return true
}

// Selected returns the selected mesh and its record
func (c *Controller) Selected() (scene.NodeID, anatomy.PartRecord, bool) {
	return c.state.Selection.Current()
}

func (c *Controller) actions() *actions.Controller {
	return &actions.Controller{Registry: c.state.Registry, Selection: &c.state.Selection}
}

// syncPanel shows the panel iff there is a selection
func (c *Controller) syncPanel() {
	if _, record, ok := c.state.Selection.Current(); ok {
		c.panel.Show(record)
		return
	}
	c.panel.Hide()
}
