package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/internal/picking"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/ui"
	"github.com/philipparndt/goanatomy/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderWidth  int
	renderHeight int
	renderPick   string
	renderAction string
	renderFit    bool
)

var renderCmd = &cobra.Command{
	Use:   "render [model]",
	Short: "Render a PNG snapshot without opening a window",
	Long: "Render the model to a PNG file. With --pick the part under that pixel is\n" +
		"selected and its info panel drawn into the image; --action then applies\n" +
		"fade, hide or reset to it.",
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "anatomy.png", "Output PNG file")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width (default: window width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height (default: window height)")
	renderCmd.Flags().StringVar(&renderPick, "pick", "", "Pointer position x,y to pick")
	renderCmd.Flags().StringVar(&renderAction, "action", "", "Action after the pick: fade, hide or reset")
	renderCmd.Flags().BoolVar(&renderFit, "fit", false, "Frame the model instead of using the configured camera")
}

// snapshotRequest describes one headless render
type snapshotRequest struct {
	Width, Height int
	Pick          *[2]float64
	Action        *app.Button
}

// snapshot is the outcome of a headless render
type snapshot struct {
	Image    *image.RGBA
	Selected *anatomy.PartRecord
	Applied  bool
}

func runRender(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("fit") {
		cfg.Camera.AutoFit = renderFit
	}

	req := snapshotRequest{Width: renderWidth, Height: renderHeight}
	if req.Width <= 0 {
		req.Width = cfg.Window.Width
	}
	if req.Height <= 0 {
		req.Height = cfg.Window.Height
	}
	if renderPick != "" {
		x, y, err := parsePoint(renderPick)
		if err != nil {
			return err
		}
		req.Pick = &[2]float64{x, y}
	}
	if renderAction != "" {
		b, err := parseAction(renderAction)
		if err != nil {
			return err
		}
		req.Action = &b
	}

	store, err := anatomy.Load(cmd.Context(), cfg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to load metadata: %w", err)
	}
	reg, err := scene.Load(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	shot := renderSnapshot(cfg, store, reg, req)

	if req.Pick != nil {
		if shot.Selected != nil {
			fmt.Println(ui.RenderRecord(*shot.Selected))
		} else {
			fmt.Println(ui.FormatInfo("No annotated part at " + renderPick))
		}
	}
	if req.Action != nil {
		if shot.Applied {
			fmt.Println(ui.FormatSuccess(req.Action.String() + " applied"))
		} else {
			fmt.Println(ui.FormatWarning(req.Action.String() + " had nothing to act on"))
		}
	}

	if err := writePNG(renderOutput, shot.Image); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Wrote %s (%dx%d)", renderOutput, req.Width, req.Height)))
	return nil
}

// renderSnapshot runs the same pick and action path as the viewer, then
// rasterizes the scene with the info panel if one is showing
func renderSnapshot(cfg *config.Config, store *anatomy.Store, reg *scene.Registry, req snapshotRequest) snapshot {
	cam := app.NewCamera(cfg.Camera)
	panel := &app.HeadlessPanel{}
	ctl := app.NewController(store, cam, panel, app.Options{
		SkipHidden: cfg.Picking.SkipHidden,
		AutoFit:    cfg.Camera.AutoFit,
	})
	ctl.SetModel(reg)

	var shot snapshot
	if req.Pick != nil {
		vp := picking.Viewport{Width: float64(req.Width), Height: float64(req.Height)}
		ctl.HandlePointerDown(app.PointerEvent{X: req.Pick[0], Y: req.Pick[1], Target: app.TargetScene}, vp)
		if _, rec, ok := ctl.Selected(); ok {
			shot.Selected = &rec
		}
	}
	if req.Action != nil {
		shot.Applied = ctl.HandleButton(*req.Action)
	}

	bg := cfg.Background
	shot.Image = viewer.Render(reg, cam, viewer.RenderOptions{
		Width:      req.Width,
		Height:     req.Height,
		Background: color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255},
		Lighting: viewer.Lighting{
			Ambient:     cfg.Lighting.Ambient,
			Directional: cfg.Lighting.Directional,
			Position:    geometry.VectorFrom(cfg.Lighting.Position),
		},
	})
	if panel.Visible {
		viewer.DrawInfoPanel(shot.Image, panel.Record)
	}
	return shot
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// parsePoint parses "x,y" pixel coordinates
func parsePoint(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q: %w", parts[0], err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate %q: %w", parts[1], err)
	}
	return x, y, nil
}

// parseAction maps an action name to its button
func parseAction(s string) (app.Button, error) {
	for _, b := range app.Buttons {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q (expected fade, hide or reset)", s)
}

