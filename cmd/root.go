package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/pkg/ui"
	"github.com/philipparndt/goanatomy/version"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	metadataFlag string
	modelFlag    string

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "goanatomy",
	Short: "Interactive 3D anatomy viewer",
	Long: ui.FormatTitle("GoAnatomy") + " - 3D anatomy viewer\n\n" +
		"Loads a muscle model (glTF, GLB or STL) and a metadata file, and shows\n" +
		"the name, type, action and origin of the part you click.",
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&metadataFlag, "metadata", "", "Metadata file or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model file (overrides config)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if metadataFlag != "" {
		loaded.Metadata = metadataFlag
	}
	if modelFlag != "" {
		loaded.Model = modelFlag
	}
	cfg = loaded
	return nil
}
