package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asciiSolids writes one unit square per name, side by side along X
func asciiSolids(names ...string) string {
	var sb strings.Builder
	for i, name := range names {
		x := float64(i) * 2
		fmt.Fprintf(&sb, "solid %s\n", name)
		for _, tri := range [][3][3]float64{
			{{x, 0, 0}, {x + 1, 0, 0}, {x + 1, 1, 0}},
			{{x, 0, 0}, {x + 1, 1, 0}, {x, 1, 0}},
		} {
			sb.WriteString("  facet normal 0 0 1\n    outer loop\n")
			for _, v := range tri {
				fmt.Fprintf(&sb, "      vertex %g %g %g\n", v[0], v[1], v[2])
			}
			sb.WriteString("    endloop\n  endfacet\n")
		}
		fmt.Fprintf(&sb, "endsolid %s\n", name)
	}
	return sb.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// waitLoaded polls ApplyLoaded the way a render loop does
func waitLoaded(t *testing.T, ctl *Controller) {
	t.Helper()
	ctx := context.Background()
	require.Eventually(t, func() bool {
		ctl.ApplyLoaded(ctx)
		return !ctl.State().Load.IsLoading
	}, 5*time.Second, 5*time.Millisecond)
}

func TestLoadModelAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.stl")
	writeFile(t, path, asciiSolids("Biceps_Brachii", "Triceps_Brachii"))

	ctl := NewController(anatomy.NewStore(records), NewCamera(config.DefaultConfig().Camera), nil, Options{})
	require.True(t, ctl.LoadModelAsync(context.Background(), path))
	assert.False(t, ctl.Ready(), "nothing is installed before ApplyLoaded")
	assert.False(t, ctl.LoadModelAsync(context.Background(), path), "second load while busy is skipped")

	waitLoaded(t, ctl)

	require.True(t, ctl.Ready())
	assert.NoError(t, ctl.State().Load.LastError)
	mesh, ok := ctl.State().Registry.MeshByName("Biceps_Brachii")
	require.True(t, ok)
	assert.True(t, mesh.Material.Transparent)
	assert.Len(t, ctl.State().Registry.Meshes(), 2)
}

func TestLoadModelFailureStaysPreInteractive(t *testing.T) {
	ctl := NewController(anatomy.NewStore(records), NewCamera(config.DefaultConfig().Camera), nil, Options{})
	ctl.LoadModelAsync(context.Background(), filepath.Join(t.TempDir(), "missing.glb"))

	waitLoaded(t, ctl)

	assert.False(t, ctl.Ready())
	assert.Error(t, ctl.State().Load.LastError)
	assert.False(t, ctl.HandleButton(ButtonReset))
}

func TestRequestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.stl")
	writeFile(t, path, asciiSolids("Biceps_Brachii"))

	panel := &HeadlessPanel{}
	ctl := NewController(anatomy.NewStore(records), NewCamera(config.DefaultConfig().Camera), panel, Options{})
	ctl.LoadModelAsync(context.Background(), path)
	waitLoaded(t, ctl)
	require.Len(t, ctl.State().Registry.Meshes(), 1)

	mesh, _ := ctl.State().Registry.MeshByName("Biceps_Brachii")
	ctl.State().Selection.Select(mesh.ID(), records["Biceps_Brachii"])
	panel.Show(records["Biceps_Brachii"])

	writeFile(t, path, asciiSolids("Biceps_Brachii", "Triceps_Brachii"))
	ctl.RequestReload()
	ctl.RequestReload()

	require.Eventually(t, func() bool {
		return ctl.ApplyLoaded(context.Background())
	}, 5*time.Second, 5*time.Millisecond)

	assert.Len(t, ctl.State().Registry.Meshes(), 2)
	_, _, ok := ctl.Selected()
	assert.False(t, ok, "reload clears the selection")
	assert.False(t, panel.Visible)
}

func TestWatchModelTriggersReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.stl")
	writeFile(t, path, asciiSolids("Biceps_Brachii"))

	ctl := NewController(anatomy.NewStore(records), NewCamera(config.DefaultConfig().Camera), nil, Options{})
	ctl.LoadModelAsync(context.Background(), path)
	waitLoaded(t, ctl)

	fw, err := ctl.WatchModel(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	writeFile(t, path, asciiSolids("Biceps_Brachii", "Triceps_Brachii", "Deltoid"))

	require.Eventually(t, func() bool {
		ctl.ApplyLoaded(context.Background())
		return ctl.State().Registry != nil && len(ctl.State().Registry.Meshes()) == 3
	}, 5*time.Second, 10*time.Millisecond)
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Metadata = filepath.Join(dir, "data.json")
	cfg.Model = filepath.Join(dir, "muscles.stl")

	writeFile(t, cfg.Metadata, `{
  "Biceps_Brachii": {"name": "Biceps Brachii", "type": "Skeletal muscle", "action": "Flexes the elbow", "origin": "Scapula"}
}`)
	writeFile(t, cfg.Model, asciiSolids("Biceps_Brachii", "Unknown_Part"))

	ctl, err := Bootstrap(context.Background(), cfg, &HeadlessPanel{})
	require.NoError(t, err)
	require.NotNil(t, ctl)
	assert.Equal(t, 1, ctl.State().Store.Len())

	waitLoaded(t, ctl)
	require.True(t, ctl.Ready())
	assert.Equal(t, cfg.Camera.FOV, ctl.State().Camera.FOV)
}

func TestBootstrapMetadataFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Metadata = filepath.Join(t.TempDir(), "missing.json")

	ctl, err := Bootstrap(context.Background(), cfg, nil)
	assert.Error(t, err)
	assert.Nil(t, ctl)
	assert.Contains(t, err.Error(), "failed to load metadata")
}
