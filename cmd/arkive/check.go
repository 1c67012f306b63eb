package arkive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arkive/arkive/internal/config"
	"github.com/arkive/arkive/internal/engine"
	"github.com/arkive/arkive/internal/report"
	"github.com/arkive/arkive/internal/tui"
	"github.com/atotto/clipboard"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var (
	flagCheckConfig         string
	flagCheckFilesystem     string
	flagCheckDestination    string
	flagCheckExclude        []string
	flagCheckAll            bool
	flagCheckEmpty          bool
	flagCheckCharacters     bool
	flagCheckLength         bool
	flagCheckForbidden      []string
	flagCheckMaxPath        int
	flagCheckMaxName        int
	flagCheckInvalidChars   string
	flagCheckReplacement    string
	flagCheckCaseSensitive  bool
	flagCheckOutput         string
	flagCheckFollowSymlinks bool
	flagCheckInteractive    bool
	flagCheckClipboard      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check a directory tree for invalid paths",
		Long: dedent.Dedent(`
			Check walks a directory tree and reports every path that violates
			the active rules: invalid characters, forbidden names, path and
			name length limits, and (optionally) empty directories.

			Which rules apply is decided by the file-system profile, which is
			detected from the path's mount by default and can be forced with
			--filesystem. The tree is never modified.

			Exit status is 0 for a clean tree, 1 when violations or access
			errors were recorded, and 2 on fatal errors.`),
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagCheckConfig, "config", "", "config file (overrides discovery)")
	cmd.Flags().StringVarP(&flagCheckFilesystem, "filesystem", "f", "", "file-system profile: "+profileList())
	cmd.Flags().StringVarP(&flagCheckDestination, "destination", "d", "", "count this copy destination into the path-length budget")
	cmd.Flags().StringSliceVar(&flagCheckExclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVarP(&flagCheckAll, "check-all", "A", false, "run every check")
	cmd.Flags().BoolVarP(&flagCheckEmpty, "check-empty-dirs", "e", false, "check for empty directories")
	cmd.Flags().BoolVarP(&flagCheckCharacters, "check-invalid-characters", "i", false, "check for invalid characters and forbidden names")
	cmd.Flags().BoolVarP(&flagCheckLength, "check-path-length", "l", false, "check path and name length limits")
	cmd.Flags().StringSliceVar(&flagCheckForbidden, "forbidden-names", nil, "extra forbidden names (repeatable)")
	cmd.Flags().IntVar(&flagCheckMaxPath, "max-path-length", 0, "override the profile's path-length limit")
	cmd.Flags().IntVar(&flagCheckMaxName, "max-name-length", 0, "override the profile's name-length limit")
	cmd.Flags().StringVar(&flagCheckInvalidChars, "invalid-characters", "", "extra characters to treat as invalid")
	cmd.Flags().StringVar(&flagCheckReplacement, "replacement", "", "replacement string used by fix suggestions")
	cmd.Flags().BoolVar(&flagCheckCaseSensitive, "case-sensitive", false, "match forbidden names case-sensitively")
	cmd.Flags().StringVarP(&flagCheckOutput, "output", "o", "", "output format: text|table|csv|json")
	cmd.Flags().BoolVar(&flagCheckFollowSymlinks, "follow-symlinks", false, "descend into symlinked directories (cycles are detected)")
	cmd.Flags().BoolVar(&flagCheckInteractive, "interactive", false, "browse the report in an interactive table")
	cmd.Flags().BoolVar(&flagCheckClipboard, "clipboard", false, "copy the report to the system clipboard")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(config.Options{
		Root:              abs,
		ConfigPath:        flagCheckConfig,
		Filesystem:        flagCheckFilesystem,
		Destination:       flagCheckDestination,
		MaxPathLength:     flagCheckMaxPath,
		MaxNameLength:     flagCheckMaxName,
		InvalidCharacters: flagCheckInvalidChars,
		Replacement:       flagCheckReplacement,
		ForbiddenNames:    flagCheckForbidden,
		Exclude:           flagCheckExclude,
		CaseSensitive:     changedBool(cmd, "case-sensitive", flagCheckCaseSensitive),
		Checks: config.ChecksSelection{
			All:        flagCheckAll,
			Empty:      changedBool(cmd, "check-empty-dirs", flagCheckEmpty),
			Characters: changedBool(cmd, "check-invalid-characters", flagCheckCharacters),
			Length:     changedBool(cmd, "check-path-length", flagCheckLength),
		},
		NoColor: flagNoColor,
		Output:  flagCheckOutput,
	})
	if err != nil {
		return err
	}

	ecfg := engine.Config{Resolved: cfg, FollowSymlinks: flagCheckFollowSymlinks}
	output := cfg.Output
	if output == "" {
		output = "text"
	}
	machine := output == "csv" || output == "json"

	if !machine {
		fmt.Fprintf(os.Stderr, "Checking %s (%s profile): %s\n", abs, cfg.Profile.Name, cfg.Checks)
	}

	// Optional progress bar: simple textual counter on stderr
	total, _ := engine.CountTargets(ecfg)
	progressed := 0
	if total > 0 && !machine {
		ecfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.Check(ecfg)
	if err != nil {
		return fmt.Errorf("check error: %w", err)
	}
	if total > 0 && !machine {
		fmt.Fprintln(os.Stderr)
	}

	if flagCheckInteractive {
		if err := tui.Run(res.Violations); err != nil {
			return err
		}
	} else {
		noColor := !report.ColorEnabled(cfg.NoColor)
		opts := report.PrintOptions{
			NoColor:        noColor,
			Duration:       res.Duration,
			EntriesChecked: res.EntriesChecked,
			Checked:        cfg.Checks.String(),
		}
		switch output {
		case "json":
			if err := report.WriteJSON(os.Stdout, res.Violations); err != nil {
				return err
			}
		case "csv":
			if err := report.WriteCSV(os.Stdout, res.Violations); err != nil {
				return err
			}
		case "table":
			report.PrintTable(os.Stdout, res.Violations, res.Errors, opts)
		case "text":
			report.PrintText(os.Stdout, res.Violations, res.Errors, opts)
		default:
			return fmt.Errorf("unsupported output format: %s", output)
		}
	}

	if flagCheckClipboard {
		var buf strings.Builder
		if err := report.WriteCSV(&buf, res.Violations); err != nil {
			return err
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			fmt.Fprintln(os.Stderr, "clipboard warning:", err)
		}
	}

	if len(res.Violations) > 0 || len(res.Errors) > 0 {
		os.Exit(1)
	}
	return nil
}

// changedBool returns nil when the flag was not given, so unset toggles can
// fall through to config-file and profile defaults.
func changedBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func profileList() string {
	s := ""
	for i, n := range config.ProfileNames() {
		if i > 0 {
			s += "|"
		}
		s += n
	}
	return s + "|auto"
}
