// Package fyneview is the Fyne frontend: a widget window with a software
// rendered scene, the action buttons and the info panel.
package fyneview

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// pollInterval is how often the background load result is checked
const pollInterval = 50 * time.Millisecond

// Window is the Fyne main window
type Window struct {
	window fyne.Window
	ctl    *app.Controller
	panel  *Panel
	scene  *SceneWidget
	status *widget.Label
	ready  bool
	failed bool
}

// Run creates the application, loads the metadata and blocks until the
// window is closed. A metadata failure is returned before any window opens.
func Run(ctx context.Context, cfg *config.Config) error {
	a := fyneapp.New()

	panel := NewPanel()
	ctl, err := app.Bootstrap(ctx, cfg, panel)
	if err != nil {
		return err
	}

	w := &Window{
		window: a.NewWindow(cfg.Window.Title),
		ctl:    ctl,
		panel:  panel,
		status: widget.NewLabel("Loading model..."),
	}
	w.scene = NewSceneWidget(ctl, renderOptions(cfg))
	w.showLoadingScreen()

	if cfg.Watch.Enabled {
		fw, err := ctl.WatchModel(cfg.Model, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
		if err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		} else {
			defer fw.Close()
		}
	}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go w.pollLoads(pollCtx)

	w.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.window.ShowAndRun()
	return nil
}

func renderOptions(cfg *config.Config) viewer.RenderOptions {
	bg := cfg.Background
	return viewer.RenderOptions{
		Background: color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255},
		Lighting: viewer.Lighting{
			Ambient:     cfg.Lighting.Ambient,
			Directional: cfg.Lighting.Directional,
			Position:    geometry.VectorFrom(cfg.Lighting.Position),
		},
	}
}

// pollLoads hands finished loads to the UI goroutine
func (w *Window) pollLoads(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() { w.applyLoaded(ctx) })
		}
	}
}

func (w *Window) applyLoaded(ctx context.Context) {
	if !w.ctl.ApplyLoaded(ctx) {
		if err := w.ctl.State().Load.LastError; err != nil && !w.ready && !w.failed {
			w.failed = true
			w.status.SetText("Model failed to load")
			w.showError(err)
		}
		return
	}
	if !w.ready {
		w.ready = true
		w.showMainUI()
	}
	w.scene.Refresh()
}

func (w *Window) showLoadingScreen() {
	title := widget.NewLabel("GoAnatomy")
	title.TextStyle = fyne.TextStyle{Bold: true}

	progress := widget.NewProgressBarInfinite()

	w.window.SetContent(container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(title),
		container.NewCenter(w.status),
		progress,
		layout.NewSpacer(),
	))
}

// actionButtons returns one button per part action, in app.Buttons order
func (w *Window) actionButtons() []*widget.Button {
	buttons := make([]*widget.Button, 0, len(app.Buttons))
	for _, b := range app.Buttons {
		buttons = append(buttons, widget.NewButton(b.String(), func() {
			if w.ctl.HandleButton(b) {
				w.scene.Refresh()
			}
		}))
	}
	return buttons
}

func (w *Window) showMainUI() {
	buttons := make([]fyne.CanvasObject, 0, len(app.Buttons))
	for _, b := range w.actionButtons() {
		buttons = append(buttons, b)
	}

	resetView := widget.NewButton("Reset View", func() {
		w.ctl.State().Camera.Reset()
		w.scene.Refresh()
	})

	help := widget.NewLabel("Click a part for details\nDrag to rotate, scroll to zoom")
	help.Wrapping = fyne.TextWrapWord

	side := container.NewVBox(
		widget.NewLabel("Part:"),
		widget.NewSeparator(),
		w.panel.Content(),
		layout.NewSpacer(),
		help,
		resetView,
	)
	sideScroll := container.NewVScroll(side)
	sideScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,                           // top
		container.NewHBox(buttons...), // bottom
		nil,                           // left
		sideScroll,                    // right
		w.scene,                       // center
	)
	w.window.SetContent(content)
}

func (w *Window) showError(err error) {
	dialog.ShowError(err, w.window)
}
