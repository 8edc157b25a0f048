package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/goanatomy/internal/config"
	"github.com/philipparndt/goanatomy/internal/fyneview"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	metadataFlag string
	modelFlag    string
	watch        bool
)

var rootCmd = &cobra.Command{
	Use:   "goanatomy-gui [model]",
	Short: "GoAnatomy viewer with a Fyne widget interface",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		return fyneview.Run(cmd.Context(), cfg)
	},
	SilenceUsage: true,
}

// loadConfig reads the config file and applies flag and argument overrides.
// A positional model argument wins over --model.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if metadataFlag != "" {
		cfg.Metadata = metadataFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if len(args) == 1 {
		cfg.Model = args[0]
	}
	if watch {
		cfg.Watch.Enabled = true
	}
	return cfg, nil
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "Path to the config file")
	rootCmd.Flags().StringVar(&metadataFlag, "metadata", "", "Metadata file or URL (overrides config)")
	rootCmd.Flags().StringVar(&modelFlag, "model", "", "Model file (overrides config)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the model when the file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
