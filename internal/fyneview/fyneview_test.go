package fyneview

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deltoid = anatomy.PartRecord{
	Name:   "Deltoid",
	Type:   "Skeletal muscle",
	Action: "Abducts the arm",
	Origin: "Clavicle, acromion and spine of scapula",
}

func TestPanelShowHide(t *testing.T) {
	test.NewTempApp(t)

	p := NewPanel()
	assert.False(t, p.Visible())

	p.Show(deltoid)
	assert.True(t, p.Visible())
	assert.Equal(t, "Deltoid", p.name.Text)
	assert.Equal(t, "Type: Skeletal muscle", p.kind.Text)
	assert.Equal(t, "Action: Abducts the arm", p.action.Text)
	assert.Equal(t, "Origin: Clavicle, acromion and spine of scapula", p.origin.Text)

	p.Hide()
	assert.False(t, p.Visible())
}

func newScene(t *testing.T) (*SceneWidget, *Panel, *app.Controller) {
	t.Helper()
	test.NewTempApp(t)

	a := geometry.NewVector3(-1, -1, 0)
	b := geometry.NewVector3(1, -1, 0)
	c := geometry.NewVector3(1, 1, 0)
	d := geometry.NewVector3(-1, 1, 0)

	builder := scene.NewBuilder("shoulder")
	builder.AddMesh(builder.Root(), "Deltoid", []geometry.Triangle{
		geometry.NewTriangle(a, b, c), geometry.NewTriangle(a, c, d),
	}, scene.DefaultColor)
	reg, err := builder.Build()
	require.NoError(t, err)

	panel := NewPanel()
	cam := viewer.NewCamera(geometry.NewVector3(0, 0, 5), geometry.Vector3{}, 45, 0.1, 1000)
	store := anatomy.NewStore(map[anatomy.PartID]anatomy.PartRecord{"Deltoid": deltoid})
	ctl := app.NewController(store, cam, panel, app.Options{})
	ctl.SetModel(reg)

	s := NewSceneWidget(ctl, renderOptions(config.DefaultConfig()))
	s.Resize(fyne.NewSize(400, 400))
	return s, panel, ctl
}

func mouseDown(s *SceneWidget, x, y float32) {
	s.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func TestSceneWidgetPicks(t *testing.T) {
	s, panel, ctl := newScene(t)

	mouseDown(s, 200, 200)
	_, rec, ok := ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, deltoid, rec)
	assert.True(t, panel.Visible())

	mouseDown(s, 5, 5)
	_, _, ok = ctl.Selected()
	assert.False(t, ok)
	assert.False(t, panel.Visible())
}

func TestSceneWidgetIgnoresSecondaryButton(t *testing.T) {
	s, panel, ctl := newScene(t)

	s.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 200)},
		Button:     desktop.MouseButtonSecondary,
	})
	_, _, ok := ctl.Selected()
	assert.False(t, ok)
	assert.False(t, panel.Visible())
}

func TestSceneWidgetDraw(t *testing.T) {
	s, _, _ := newScene(t)

	img := s.draw(100, 80)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 80, img.Bounds().Dy())

	bg := config.DefaultConfig().Background
	want := color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}
	assert.Equal(t, want, img.At(0, 0))
	assert.NotEqual(t, want, img.At(50, 40), "the mesh covers the center")
}

func TestActionButtons(t *testing.T) {
	s, panel, ctl := newScene(t)
	w := &Window{ctl: ctl, panel: panel, scene: s}

	buttons := w.actionButtons()
	require.Len(t, buttons, len(app.Buttons))
	for i, b := range app.Buttons {
		assert.Equal(t, b.String(), buttons[i].Text)
	}

	mesh, ok := ctl.State().Registry.MeshByName("Deltoid")
	require.True(t, ok)

	mouseDown(s, 200, 200)
	require.True(t, panel.Visible())
	test.Tap(buttons[1]) // Hide
	assert.False(t, mesh.Visible)
	assert.Equal(t, 1.0, mesh.Material.Opacity)
	assert.False(t, panel.Visible())

	test.Tap(buttons[2]) // Reset
	assert.True(t, mesh.Visible)

	mouseDown(s, 200, 200)
	test.Tap(buttons[0]) // Fade
	assert.Equal(t, 0.2, mesh.Material.Opacity)
	assert.True(t, mesh.Visible)
}
