package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/philipparndt/goanatomy/internal/app"
	"github.com/philipparndt/goanatomy/internal/raylibview"
	"github.com/spf13/cobra"
)

var (
	viewWatch      bool
	viewFit        bool
	viewSkipHidden bool
)

var viewCmd = &cobra.Command{
	Use:   "view [model]",
	Short: "Open the interactive viewer window",
	Long: "Open the model in a window. Click a part to show its details, then use\n" +
		"Fade, Hide or Reset. Drag to rotate, Shift+drag to pan, scroll to zoom,\n" +
		"Home resets the view, F frames the model, Esc clears the selection.",
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "Reload the model when the file changes")
	viewCmd.Flags().BoolVar(&viewFit, "fit", false, "Frame the model instead of using the configured camera")
	viewCmd.Flags().BoolVar(&viewSkipHidden, "skip-hidden", false, "Do not pick hidden parts")
}

func runView(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch.Enabled = viewWatch
	}
	if cmd.Flags().Changed("fit") {
		cfg.Camera.AutoFit = viewFit
	}
	if cmd.Flags().Changed("skip-hidden") {
		cfg.Picking.SkipHidden = viewSkipHidden
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	panel := raylibview.NewPanel()
	ctl, err := app.Bootstrap(ctx, cfg, panel)
	if err != nil {
		return err
	}
	return raylibview.Run(ctx, ctl, panel, cfg)
}
