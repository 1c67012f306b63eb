package arkive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkive/arkive/internal/types"
	"github.com/arkive/arkive/internal/walker"
	"github.com/ddddddO/gtree"
	"github.com/spf13/cobra"
)

var flagShowFollowSymlinks bool

func init() {
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagShowFollowSymlinks, "follow-symlinks", false, "descend into symlinked directories (cycles are detected)")
}

func runShow(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	entries, err := walker.Walk(abs, walker.Options{FollowSymlinks: flagShowFollowSymlinks})
	if err != nil {
		return fmt.Errorf("show error: %w", err)
	}

	top := gtree.NewRoot(filepath.Base(abs))
	nodes := map[string]*gtree.Node{"": top}
	unreadable := 0
	for _, e := range entries {
		parent := nodes[parentRel(e.Rel)]
		if parent == nil {
			continue // subtree below an unreadable directory
		}
		label := e.Name()
		if e.Err != nil {
			label += " [unreadable]"
			unreadable++
		}
		n := parent.Add(label)
		if e.Kind == types.KindDir {
			nodes[e.Rel] = n
		}
	}

	if err := gtree.OutputProgrammably(os.Stdout, top); err != nil {
		return err
	}
	if unreadable > 0 {
		fmt.Fprintf(os.Stderr, "%d director%s could not be read\n", unreadable, pluralY(unreadable))
		os.Exit(1)
	}
	return nil
}

func parentRel(rel string) string {
	for i := len(rel) - 1; i >= 0; i-- {
		if rel[i] == '/' {
			return rel[:i]
		}
	}
	return ""
}
