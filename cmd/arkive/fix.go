package arkive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkive/arkive/internal/config"
	"github.com/arkive/arkive/internal/fix"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var (
	flagFixConfig       string
	flagFixFilesystem   string
	flagFixExclude      []string
	flagFixDryRun       bool
	flagFixCollision    string
	flagFixReplacement  string
	flagFixInvalidChars string
	flagFixAll          bool
	flagFixEmpty        bool
	flagFixCharacters   bool
	flagFixLength       bool
	flagFixJSON         bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Rename invalid paths to conform with the rules",
		Long: dedent.Dedent(`
			Fix renames paths so the tree passes check: invalid characters in
			name stems are replaced, configured rename patterns are applied,
			and (with the empty check active) empty directories are removed.

			Entries are renamed deepest-first so a rename never invalidates
			paths still waiting to be processed. When a rename target already
			exists the collision policy decides: increment appends "(n)"
			before the extension, skip leaves the path untouched.

			Use --dry-run to print the planned renames without touching the
			file system.`),
		Args: cobra.MaximumNArgs(1),
		RunE: runFix,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagFixConfig, "config", "", "config file (overrides discovery)")
	cmd.Flags().StringVarP(&flagFixFilesystem, "filesystem", "f", "", "file-system profile: "+profileList())
	cmd.Flags().StringSliceVar(&flagFixExclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVarP(&flagFixDryRun, "dry-run", "n", false, "print planned renames without applying them")
	cmd.Flags().StringVar(&flagFixCollision, "collision", "increment", "collision policy: increment|skip")
	cmd.Flags().StringVar(&flagFixReplacement, "replacement", "", "replacement for invalid characters (default _)")
	cmd.Flags().StringVar(&flagFixInvalidChars, "invalid-characters", "", "extra characters to treat as invalid")
	cmd.Flags().BoolVarP(&flagFixAll, "check-all", "A", false, "fix against every check")
	cmd.Flags().BoolVarP(&flagFixEmpty, "check-empty-dirs", "e", false, "remove empty directories")
	cmd.Flags().BoolVarP(&flagFixCharacters, "check-invalid-characters", "i", false, "fix invalid characters and forbidden names")
	cmd.Flags().BoolVarP(&flagFixLength, "check-path-length", "l", false, "report length violations renaming cannot address")
	cmd.Flags().BoolVar(&flagFixJSON, "json", false, "emit applied changes as JSON")
}

func runFix(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	collision, err := fix.ParseCollision(flagFixCollision)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(config.Options{
		Root:              abs,
		ConfigPath:        flagFixConfig,
		Filesystem:        flagFixFilesystem,
		InvalidCharacters: flagFixInvalidChars,
		Replacement:       flagFixReplacement,
		Exclude:           flagFixExclude,
		Checks: config.ChecksSelection{
			All:        flagFixAll,
			Empty:      changedBool(cmd, "check-empty-dirs", flagFixEmpty),
			Characters: changedBool(cmd, "check-invalid-characters", flagFixCharacters),
			Length:     changedBool(cmd, "check-path-length", flagFixLength),
		},
		NoColor: flagNoColor,
	})
	if err != nil {
		return err
	}

	res, err := fix.Apply(cfg, fix.Options{DryRun: flagFixDryRun, Collision: collision})
	if err != nil {
		return fmt.Errorf("fix error: %w", err)
	}

	if flagFixJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		changes := res.Changes
		if changes == nil {
			changes = []fix.Change{}
		}
		if err := enc.Encode(changes); err != nil {
			return err
		}
	} else {
		verb := "renamed"
		if flagFixDryRun {
			verb = "would rename"
		}
		for _, c := range res.Changes {
			fmt.Printf("%s  %s -> %s\n", verb, c.Path, c.NewPath)
		}
		for _, d := range res.RemovedDirs {
			if flagFixDryRun {
				fmt.Printf("would remove empty directory  %s\n", d)
			} else {
				fmt.Printf("removed empty directory  %s\n", d)
			}
		}
		for _, v := range res.Unfixed {
			fmt.Printf("unfixed  %s  %s\n", v.Path, v.Message)
		}
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
		fmt.Printf("\n%d rename%s, %d director%s removed, %d unfixed\n",
			len(res.Changes), pluralS(len(res.Changes)),
			len(res.RemovedDirs), pluralY(len(res.RemovedDirs)),
			len(res.Unfixed))
	}

	if !res.Clean() {
		os.Exit(1)
	}
	return nil
}
