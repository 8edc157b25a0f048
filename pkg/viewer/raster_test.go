package viewer

import (
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
)

var background = color.RGBA{R: 10, G: 20, B: 30, A: 255}

func square(z float64) []geometry.Triangle {
	a := geometry.NewVector3(-1, -1, z)
	b := geometry.NewVector3(1, -1, z)
	c := geometry.NewVector3(1, 1, z)
	d := geometry.NewVector3(-1, 1, z)
	return []geometry.Triangle{geometry.NewTriangle(a, b, c), geometry.NewTriangle(a, c, d)}
}

func renderOne(t *testing.T, mutate func(*scene.Mesh)) color.RGBA {
	t.Helper()
	b := scene.NewBuilder("root")
	b.AddMesh(b.Root(), "Biceps_Brachii", square(0), color.RGBA{R: 200, G: 0, B: 0, A: 255})
	reg, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	reg.PrepareMaterials()
	mesh, _ := reg.MeshByName("Biceps_Brachii")
	mutate(mesh)

	img := Render(reg, testCamera(), RenderOptions{
		Width:      80,
		Height:     60,
		Background: background,
		Lighting:   Lighting{Ambient: 1},
	})
	return img.RGBAAt(40, 30)
}

func TestRenderOpaqueMesh(t *testing.T) {
	got := renderOne(t, func(*scene.Mesh) {})
	if got != (color.RGBA{R: 200, G: 0, B: 0, A: 255}) {
		t.Errorf("expected mesh colour at center, got %v", got)
	}
}

func TestRenderHiddenMesh(t *testing.T) {
	got := renderOne(t, func(m *scene.Mesh) { m.Visible = false })
	if got != background {
		t.Errorf("hidden mesh should leave the background, got %v", got)
	}
}

func TestRenderFadedMesh(t *testing.T) {
	got := renderOne(t, func(m *scene.Mesh) { m.Material.Opacity = 0.2 })
	// 0.2*200 + 0.8*10 = 48
	if got.R != 48 {
		t.Errorf("expected blended red 48, got %v", got)
	}
}

func TestRenderNilRegistry(t *testing.T) {
	img := Render(nil, testCamera(), RenderOptions{Width: 4, Height: 4, Background: background})
	if img.RGBAAt(1, 1) != background {
		t.Error("expected background only")
	}
}

func TestDrawInfoPanelChangesPixels(t *testing.T) {
	img := Render(nil, testCamera(), RenderOptions{Width: 400, Height: 200, Background: background})
	DrawInfoPanel(img, anatomy.PartRecord{Name: "Biceps brachii", Type: "Muscle", Action: "Flexion", Origin: "Scapula"})

	if img.RGBAAt(14, 14) == background {
		t.Error("expected panel background at top-left corner")
	}
	if img.RGBAAt(390, 190) != background {
		t.Error("panel should not cover the whole image")
	}
}

func TestLightingIntensity(t *testing.T) {
	light := DefaultLighting()

	facing := light.Position.Normalize()
	if got := light.Intensity(facing); got != 1 {
		t.Errorf("Intensity(towards light) = %v, want 1 (clamped)", got)
	}
	if got := light.Intensity(facing.Negate()); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Intensity(away from light) = %v, want ambient 0.6", got)
	}

	c := Shade(color.RGBA{R: 100, G: 200, B: 50, A: 255}, 0.5)
	if c.R != 50 || c.G != 100 || c.B != 25 || c.A != 255 {
		t.Errorf("Shade() = %+v", c)
	}
}
