package cmd

import (
	"fmt"

	"github.com/philipparndt/goanatomy/pkg/ui"
	"github.com/philipparndt/goanatomy/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// No config needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.FormatTitle("GoAnatomy") + " " + version.GetFullVersion())
		fmt.Println(ui.RenderKeyValue("Commit", version.GitCommit))
		fmt.Println(ui.RenderKeyValue("Built", version.BuildDate))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
