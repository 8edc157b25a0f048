package cmd

import (
	"fmt"

	"github.com/philipparndt/goanatomy/pkg/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configSave string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after defaults and flags are applied. With --save it is written to a file.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&configSave, "save", "", "Write the configuration to this file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configSave != "" {
		if err := cfg.Save(configSave); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Saved configuration to " + configSave))
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
