// Package raylibview is the Raylib frontend: a continuously rendered
// window with orbit controls, raygui action buttons and an info panel.
package raylibview

import (
	"context"
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// View is the Raylib window state
type View struct {
	ctl      *app.Controller
	cfg      *config.Config
	panel    *Panel
	light    viewer.Lighting
	meshes   []gpuMesh
	material rl.Material
	input    inputState
	font     rl.Font
}

// Run opens the window and blocks until it is closed. panel must be the
// panel the controller was created with.
func Run(ctx context.Context, ctl *app.Controller, panel *Panel, cfg *config.Config) error {
	v := &View{
		ctl:   ctl,
		cfg:   cfg,
		panel: panel,
		light: viewer.Lighting{
			Ambient:     cfg.Lighting.Ambient,
			Directional: cfg.Lighting.Directional,
			Position:    geometry.VectorFrom(cfg.Lighting.Position),
		},
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	v.font = rl.GetFontDefault()
	v.material = rl.LoadMaterialDefault()
	setupStyle()

	if cfg.Watch.Enabled && ctl.State().Load.ModelPath != "" {
		fw, err := ctl.WatchModel(ctl.State().Load.ModelPath, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
		if err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer fw.Close()
		}
	}

	defer func() { unloadMeshes(v.meshes) }()

	for {
		// ESC dismisses the selection instead of closing the window
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		if ctx.Err() != nil {
			break
		}

		// Upload a newly loaded model (must be on main thread)
		if ctl.ApplyLoaded(ctx) {
			old := v.meshes
			v.meshes = uploadRegistry(ctl.State().Registry, v.light)
			unloadMeshes(old)
		}

		v.handleInput()
		v.draw()
	}

	return nil
}

func setupStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(30, 30, 35, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 50, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 60, 70, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(70, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(200, 200, 200, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.Yellow))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
}

func (v *View) draw() {
	state := v.ctl.State()
	bg := v.cfg.Background

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(bg[0], bg[1], bg[2], 255))

	if state.Registry != nil {
		rl.BeginMode3D(toRaylibCamera(state.Camera))
		rl.DisableBackfaceCulling()
		drawMeshes(state.Registry, v.meshes, v.material, state.Camera)
		rl.EnableBackfaceCulling()
		rl.EndMode3D()
	}

	v.panel.draw(v.font)
	v.drawButtons()
	v.drawStatus()

	rl.EndDrawing()
}

// drawButtons draws the action buttons and runs the one clicked this frame
func (v *View) drawButtons() {
	for i, rect := range v.buttonRects() {
		if gui.Button(rect, app.Buttons[i].String()) {
			v.ctl.HandleButton(app.Buttons[i])
		}
	}
}

// drawStatus shows the loading spinner or a load error in the top-right corner
func (v *View) drawStatus() {
	load := v.ctl.State().Load

	var text string
	color := rl.Yellow
	switch {
	case load.IsLoading:
		elapsed := time.Since(load.StartedAt).Seconds()
		spinnerChars := []string{"|", "/", "-", "\\"}
		text = fmt.Sprintf("%s Loading model... (%.1fs)", spinnerChars[int(elapsed*10)%len(spinnerChars)], elapsed)
	case load.LastError != nil:
		text = "Model failed to load, see console"
		color = rl.Red
	default:
		return
	}

	const fontSize = float32(18)
	screenWidth := float32(rl.GetScreenWidth())
	size := rl.MeasureTextEx(v.font, text, fontSize, 1)
	box := rl.Rectangle{X: screenWidth - size.X - 40, Y: 20, Width: size.X + 20, Height: 40}

	rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLinesEx(box, 1, color)
	rl.DrawTextEx(v.font, text, rl.Vector2{X: box.X + 10, Y: box.Y + (box.Height-size.Y)/2}, fontSize, 1, color)
}

func toRaylibCamera(cam *viewer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRaylib(cam.Position),
		Target:     toRaylib(cam.Target),
		Up:         toRaylib(cam.Up),
		Fovy:       float32(cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
