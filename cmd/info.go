package cmd

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/goanatomy/pkg/analysis"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/ui"
	"github.com/spf13/cobra"
)

var infoPart string

var infoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Show the parts of a model and their metadata coverage",
	Long: "List every mesh of the model with its size, whether the metadata has a\n" +
		"record for it, and metadata records that match no mesh.",
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoPart, "part", "p", "", "Show the metadata record of one part")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Model = args[0]
	}

	store, err := anatomy.Load(cmd.Context(), cfg.Metadata)
	if err != nil {
		// The model is still worth listing without annotations
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Metadata unavailable: %v", err)))
		store = nil
	}

	if infoPart != "" {
		rec, ok := store.Lookup(anatomy.PartID(infoPart))
		if !ok {
			return fmt.Errorf("no metadata for part %q", infoPart)
		}
		fmt.Println(ui.RenderRecord(rec))
		return nil
	}

	reg, err := scene.Load(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	printModelInfo(reg, store)
	return nil
}

func printModelInfo(reg *scene.Registry, store *anatomy.Store) {
	result := analysis.AnalyzeModel(reg, store)
	cov := analysis.CheckCoverage(reg, store)

	fmt.Println(ui.FormatTitle("Model Information"))
	fmt.Println(ui.RenderKeyValue("File", cfg.Model))
	fmt.Println(ui.RenderKeyValue("Metadata", cfg.Metadata))
	fmt.Println(ui.RenderKeyValue("Meshes", strconv.Itoa(len(result.Meshes))))
	fmt.Println(ui.RenderKeyValue("Groups", strconv.Itoa(result.GroupCount)))
	fmt.Println(ui.RenderKeyValue("Triangles", strconv.Itoa(result.TriangleCount)))
	fmt.Println(ui.RenderKeyValue("Surface Area", analysis.FormatMeasurement(result.SurfaceArea, "units²")))
	if !result.BoundingBox.IsEmpty() {
		fmt.Println(ui.RenderKeyValue("Bounds Min", analysis.FormatVector(result.BoundingBox.Min)))
		fmt.Println(ui.RenderKeyValue("Bounds Max", analysis.FormatVector(result.BoundingBox.Max)))
		fmt.Println(ui.RenderKeyValue("Size", analysis.FormatVector(result.Dimensions)))
	}
	fmt.Println()

	table := ui.NewTable("Mesh", "Triangles", "Size", "Metadata")
	for _, m := range result.Meshes {
		annotated := ui.IconError
		if m.Annotated {
			annotated = ui.IconSuccess
		}
		table.AddRow(m.Name, strconv.Itoa(m.TriangleCount), analysis.FormatVector(m.Dimensions), annotated)
	}
	fmt.Print(table.Render())
	fmt.Println()

	fmt.Println(ui.FormatHeader(fmt.Sprintf("Coverage: %d of %d part names annotated",
		len(cov.Annotated), len(cov.Annotated)+len(cov.Unannotated))))
	if len(cov.Unannotated) > 0 {
		fmt.Println(ui.FormatMuted("Meshes without metadata:"))
		fmt.Print(ui.RenderList(cov.Unannotated))
	}
	if len(cov.Orphans) > 0 {
		orphans := make([]string, len(cov.Orphans))
		for i, id := range cov.Orphans {
			orphans[i] = string(id)
		}
		fmt.Println(ui.FormatMuted("Metadata without a mesh:"))
		fmt.Print(ui.RenderList(orphans))
	}
	for _, name := range cov.Duplicates {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Duplicate mesh name %q, only the first is annotated", name)))
	}
}
