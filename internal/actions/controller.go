// Package actions implements the per-part Fade, Hide and Reset operations.
package actions

import (
	"github.com/philipparndt/goanatomy/internal/selection"
	"github.com/philipparndt/goanatomy/pkg/scene"
)

// FadeOpacity is the opacity a faded part is set to
const FadeOpacity = 0.2

// Controller mutates mesh visual state in a registry. Every method reports
// whether it changed anything; without a target it is a no-op.
type Controller struct {
	Registry  *scene.Registry
	Selection *selection.State
}

// Fade makes the selected mesh translucent and clears the selection
func (c *Controller) Fade() bool {
	mesh, ok := c.selected()
	if !ok {
		return false
	}
	mesh.Material.Opacity = FadeOpacity
	c.Selection.Clear()
	return true
}

// Hide makes the selected mesh invisible and clears the selection
func (c *Controller) Hide() bool {
	mesh, ok := c.selected()
	if !ok {
		return false
	}
	mesh.Visible = false
	c.Selection.Clear()
	return true
}

// Reset restores visibility and full opacity on every mesh. The selection
// is left alone.
func (c *Controller) Reset() bool {
	if c.Registry == nil {
		return false
	}
	for _, mesh := range c.Registry.Meshes() {
		mesh.Visible = true
		mesh.Material.Opacity = 1.0
	}
	return true
}

// Dismiss clears the selection without touching any mesh
func (c *Controller) Dismiss() bool {
	if c.Selection == nil || c.Selection.IsEmpty() {
		return false
	}
	c.Selection.Clear()
	return true
}

func (c *Controller) selected() (*scene.Mesh, bool) {
	if c.Selection == nil {
		return nil, false
	}
	id, _, ok := c.Selection.Current()
	if !ok {
		return nil, false
	}
	return c.Registry.Mesh(id)
}
