package app

import (
	"testing"

	"github.com/philipparndt/goanatomy/internal/actions"
	"github.com/philipparndt/goanatomy/internal/picking"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewport = picking.Viewport{Width: 800, Height: 600}

var records = map[anatomy.PartID]anatomy.PartRecord{
	"Biceps_Brachii": {
		Name:   "Biceps Brachii",
		Type:   "Skeletal muscle",
		Action: "Flexes and supinates the forearm",
		Origin: "Coracoid process and supraglenoid tubercle",
	},
	"Triceps_Brachii": {
		Name:   "Triceps Brachii",
		Type:   "Skeletal muscle",
		Action: "Extends the forearm",
		Origin: "Infraglenoid tubercle and posterior humerus",
	},
}

func quad(cx, cy, half float64) []geometry.Triangle {
	a := geometry.NewVector3(cx-half, cy-half, 0)
	b := geometry.NewVector3(cx+half, cy-half, 0)
	c := geometry.NewVector3(cx+half, cy+half, 0)
	d := geometry.NewVector3(cx-half, cy+half, 0)
	return []geometry.Triangle{geometry.NewTriangle(a, b, c), geometry.NewTriangle(a, c, d)}
}

type fixture struct {
	ctl     *Controller
	panel   *HeadlessPanel
	cam     *viewer.Camera
	biceps  scene.NodeID
	triceps scene.NodeID
	other   scene.NodeID
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	b := scene.NewBuilder("muscles")
	arm := b.AddGroup(b.Root(), "Upper_Arm")
	f := &fixture{
		biceps:  b.AddMesh(arm, "Biceps_Brachii", quad(-1, 0, 0.5), scene.DefaultColor),
		triceps: b.AddMesh(arm, "Triceps_Brachii", quad(1, 0, 0.5), scene.DefaultColor),
		other:   b.AddMesh(b.Root(), "Unlabelled_Fascia", quad(0, 1.5, 0.4), scene.DefaultColor),
	}
	reg, err := b.Build()
	require.NoError(t, err)
	reg.PrepareMaterials()

	f.cam = viewer.NewCamera(geometry.NewVector3(0, 0, 5), geometry.Vector3{}, 45, 0.1, 1000)
	f.panel = &HeadlessPanel{}
	f.ctl = NewController(anatomy.NewStore(records), f.cam, f.panel, opts)
	f.ctl.SetModel(reg)
	return f
}

// click sends a pointer-down at the screen position of a world point
func (f *fixture) click(target Target, x, y float64) bool {
	px, py, _ := f.cam.Project(geometry.NewVector3(x, y, 0), viewport.Width, viewport.Height)
	return f.ctl.HandlePointerDown(PointerEvent{X: px, Y: py, Target: target}, viewport)
}

func (f *fixture) mesh(t *testing.T, id scene.NodeID) *scene.Mesh {
	t.Helper()
	m, ok := f.ctl.State().Registry.Mesh(id)
	require.True(t, ok)
	return m
}

func (f *fixture) assertEmpty(t *testing.T) {
	t.Helper()
	_, _, ok := f.ctl.Selected()
	assert.False(t, ok, "selection should be empty")
	assert.False(t, f.panel.Visible, "panel should be hidden")
}

func TestPickShowsRecord(t *testing.T) {
	f := newFixture(t, Options{})

	require.True(t, f.click(TargetScene, -1, 0))

	id, rec, ok := f.ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.biceps, id)
	assert.Equal(t, records["Biceps_Brachii"], rec)
	assert.True(t, f.panel.Visible)
	assert.Equal(t, records["Biceps_Brachii"], f.panel.Record)
}

func TestPickReplacesSelection(t *testing.T) {
	f := newFixture(t, Options{})

	f.click(TargetScene, -1, 0)
	f.click(TargetScene, 1, 0)

	id, rec, ok := f.ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.triceps, id)
	assert.Equal(t, "Triceps Brachii", rec.Name)
	assert.Equal(t, "Triceps Brachii", f.panel.Record.Name)
}

func TestButtonTargetIsNotPicked(t *testing.T) {
	f := newFixture(t, Options{})

	assert.False(t, f.click(TargetButton, -1, 0))
	f.assertEmpty(t)

	f.click(TargetScene, 1, 0)
	assert.False(t, f.click(TargetButton, -1, 0))
	id, _, ok := f.ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.triceps, id, "a click on a control keeps the selection")
}

func TestMissClearsSelection(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)

	require.True(t, f.ctl.HandlePointerDown(PointerEvent{X: 2, Y: 2, Target: TargetScene}, viewport))
	f.assertEmpty(t)
}

func TestUnannotatedHitClearsSelection(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)

	require.True(t, f.click(TargetScene, 0, 1.5))
	f.assertEmpty(t)
}

func TestBicepsFadeAndReset(t *testing.T) {
	f := newFixture(t, Options{})

	f.click(TargetScene, -1, 0)
	require.True(t, f.ctl.HandleButton(ButtonFade))

	biceps := f.mesh(t, f.biceps)
	assert.Equal(t, actions.FadeOpacity, biceps.Material.Opacity)
	assert.Equal(t, 0.2, biceps.Material.Opacity)
	assert.True(t, biceps.Visible)
	assert.True(t, biceps.Material.Transparent)
	f.assertEmpty(t)

	triceps := f.mesh(t, f.triceps)
	assert.Equal(t, 1.0, triceps.Material.Opacity, "siblings keep their opacity")

	require.True(t, f.ctl.HandleButton(ButtonReset))
	assert.Equal(t, 1.0, biceps.Material.Opacity)
	assert.True(t, biceps.Visible)
	assert.True(t, biceps.Material.Transparent, "transparency is never switched off")
}

func TestFadedPartStaysPickable(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)
	f.ctl.HandleButton(ButtonFade)

	f.click(TargetScene, -1, 0)
	id, _, ok := f.ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.biceps, id)
}

func TestHide(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, 1, 0)

	require.True(t, f.ctl.HandleButton(ButtonHide))
	triceps := f.mesh(t, f.triceps)
	assert.False(t, triceps.Visible)
	assert.Equal(t, 1.0, triceps.Material.Opacity)
	f.assertEmpty(t)
}

func TestHiddenPartPicking(t *testing.T) {
	t.Run("default includes hidden meshes", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.click(TargetScene, 1, 0)
		f.ctl.HandleButton(ButtonHide)

		f.click(TargetScene, 1, 0)
		id, _, ok := f.ctl.Selected()
		require.True(t, ok)
		assert.Equal(t, f.triceps, id)
	})

	t.Run("skip hidden", func(t *testing.T) {
		f := newFixture(t, Options{SkipHidden: true})
		f.click(TargetScene, 1, 0)
		f.ctl.HandleButton(ButtonHide)

		f.click(TargetScene, 1, 0)
		f.assertEmpty(t)
	})
}

func TestResetKeepsSelectionAndPanel(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)
	f.ctl.HandleButton(ButtonFade)
	f.click(TargetScene, 1, 0)
	f.ctl.HandleButton(ButtonHide)
	f.click(TargetScene, -1, 0)

	require.True(t, f.ctl.HandleButton(ButtonReset))

	for _, m := range f.ctl.State().Registry.Meshes() {
		assert.True(t, m.Visible, m.Name())
		assert.Equal(t, 1.0, m.Material.Opacity, m.Name())
	}
	id, _, ok := f.ctl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.biceps, id)
	assert.True(t, f.panel.Visible)
}

func TestActionsWithoutSelection(t *testing.T) {
	f := newFixture(t, Options{})

	assert.False(t, f.ctl.HandleButton(ButtonFade))
	assert.False(t, f.ctl.HandleButton(ButtonHide))
	assert.False(t, f.ctl.Dismiss())
	for _, m := range f.ctl.State().Registry.Meshes() {
		assert.True(t, m.Visible)
		assert.Equal(t, 1.0, m.Material.Opacity)
	}
}

func TestDismiss(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)

	require.True(t, f.ctl.Dismiss())
	f.assertEmpty(t)
	assert.True(t, f.mesh(t, f.biceps).Visible)
}

func TestBeforeModelLoad(t *testing.T) {
	panel := &HeadlessPanel{}
	cam := viewer.NewCamera(geometry.NewVector3(0, 0, 5), geometry.Vector3{}, 45, 0.1, 1000)
	ctl := NewController(anatomy.NewStore(records), cam, panel, Options{})

	assert.False(t, ctl.Ready())
	assert.False(t, ctl.HandlePointerDown(PointerEvent{X: 400, Y: 300}, viewport))
	assert.False(t, ctl.HandleButton(ButtonReset))
	assert.False(t, ctl.HandleButton(ButtonFade))
	assert.False(t, panel.Visible)
}

func TestSetModelClearsSelection(t *testing.T) {
	f := newFixture(t, Options{})
	f.click(TargetScene, -1, 0)

	f.ctl.SetModel(f.ctl.State().Registry)
	f.assertEmpty(t)
}

func TestAutoFit(t *testing.T) {
	f := newFixture(t, Options{AutoFit: true})
	f.ctl.SetModel(f.ctl.State().Registry)

	center := f.ctl.State().Registry.Bounds().Center()
	assert.True(t, f.cam.Target.ApproxEqual(center, 1e-9))
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, []string{"Fade", "Hide", "Reset"}, []string{
		Buttons[0].String(), Buttons[1].String(), Buttons[2].String(),
	})
	assert.Equal(t, "Unknown", Button(42).String())
}
