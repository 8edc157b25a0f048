package fyneview

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/picking"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// SceneWidget renders the model with the software rasterizer and forwards
// pointer input to the controller
type SceneWidget struct {
	widget.BaseWidget

	ctl    *app.Controller
	opts   viewer.RenderOptions
	raster *canvas.Raster
}

// NewSceneWidget creates the scene view for a controller
func NewSceneWidget(ctl *app.Controller, opts viewer.RenderOptions) *SceneWidget {
	s := &SceneWidget{ctl: ctl, opts: opts}
	s.raster = canvas.NewRaster(s.draw)
	s.ExtendBaseWidget(s)
	return s
}

func (s *SceneWidget) draw(w, h int) image.Image {
	opts := s.opts
	opts.Width, opts.Height = w, h
	state := s.ctl.State()
	return viewer.Render(state.Registry, state.Camera, opts)
}

func (s *SceneWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

func (s *SceneWidget) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// MouseDown is the pointer-down event that picks a part
func (s *SceneWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	size := s.Size()
	vp := picking.Viewport{Width: float64(size.Width), Height: float64(size.Height)}
	pe := app.PointerEvent{X: float64(ev.Position.X), Y: float64(ev.Position.Y), Target: app.TargetScene}
	if s.ctl.HandlePointerDown(pe, vp) {
		s.Refresh()
	}
}

func (s *SceneWidget) MouseUp(*desktop.MouseEvent) {}

// Dragged orbits the camera
func (s *SceneWidget) Dragged(ev *fyne.DragEvent) {
	s.ctl.State().Camera.Rotate(float64(ev.Dragged.DY)*0.01, -float64(ev.Dragged.DX)*0.01)
	s.Refresh()
}

func (s *SceneWidget) DragEnd() {}

// Scrolled zooms the camera
func (s *SceneWidget) Scrolled(ev *fyne.ScrollEvent) {
	s.ctl.State().Camera.Zoom(-float64(ev.Scrolled.DY) * 0.01)
	s.Refresh()
}
