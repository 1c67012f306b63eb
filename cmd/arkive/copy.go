package arkive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkive/arkive/internal/mirror"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "copy <source> <destination>",
		Short: "Replicate a tree's structure with empty placeholder files",
		Long: dedent.Dedent(`
			Copy reproduces the directory hierarchy of the source under the
			destination, creating an empty file for every source file. No file
			contents are read or written.

			Runs are idempotent: directories and placeholder files that already
			exist are skipped. A destination path occupied by a node of the
			wrong kind is reported as a conflict and the run continues.`),
		Args: cobra.ExactArgs(2),
		RunE: runCopy,
	}
	rootCmd.AddCommand(cmd)
}

func runCopy(_ *cobra.Command, args []string) error {
	src, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	dst, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}

	res, err := mirror.Mirror(src, dst, mirror.Options{})
	if err != nil {
		return fmt.Errorf("copy error: %w", err)
	}

	for _, c := range res.Conflicts {
		fmt.Fprintln(os.Stderr, "conflict:", c)
	}
	for _, e := range res.Errors {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	fmt.Printf("Created %d director%s and %d placeholder file%s (%d skipped)\n",
		res.DirsCreated, pluralY(res.DirsCreated), res.FilesCreated, pluralS(res.FilesCreated), res.Skipped)

	if !res.Clean() {
		os.Exit(1)
	}
	return nil
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
