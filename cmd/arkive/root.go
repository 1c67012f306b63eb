package arkive

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagNoColor bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the arkive CLI.
var rootCmd = &cobra.Command{
	Use:           "arkive",
	Short:         "Validate and replicate archive directory trees",
	Long:          "Arkive checks directory trees against file-system naming rules, fixes invalid names, replicates tree structure and compares trees.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the arkive CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}
