package arkive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkive/arkive/internal/compare"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var flagCompareQuiet bool

func init() {
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare the structure of two directory trees",
		Long: dedent.Dedent(`
			Compare walks both trees and reports paths present on only one
			side and paths whose kind differs (file on one side, directory on
			the other). File contents are never read.

			Exit status is 0 when the trees match and 1 when they differ.`),
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagCompareQuiet, "quiet", "q", false, "suppress the per-path listing")
}

func runCompare(_ *cobra.Command, args []string) error {
	left, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	right, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}

	d, err := compare.Trees(left, right)
	if err != nil {
		return fmt.Errorf("compare error: %w", err)
	}

	if d.Equal() {
		fmt.Printf("Trees match (digest %016x)\n", d.LeftDigest)
		return nil
	}

	if !flagCompareQuiet {
		for _, p := range d.LeftOnly {
			fmt.Printf("only in %s: %s\n", args[0], p)
		}
		for _, p := range d.RightOnly {
			fmt.Printf("only in %s: %s\n", args[1], p)
		}
		for _, p := range d.KindMismatch {
			fmt.Printf("kind differs: %s\n", p)
		}
	}
	fmt.Printf("Trees differ: %d only left, %d only right, %d kind mismatch (digests %016x / %016x)\n",
		len(d.LeftOnly), len(d.RightOnly), len(d.KindMismatch), d.LeftDigest, d.RightDigest)
	os.Exit(1)
	return nil
}
