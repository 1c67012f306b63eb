package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arkive/arkive/internal/types"
	"github.com/olekukonko/tablewriter"
)

// PrintOptions carries rendering knobs and run statistics for the summary
// footer.
type PrintOptions struct {
	NoColor        bool
	Duration       time.Duration
	EntriesChecked int
	Checked        string // human description of the active checks
}

// PrintText writes one line per violation (path, rule, message) followed by
// access errors and a summary footer.
func PrintText(w io.Writer, violations []types.Violation, errs []error, opts PrintOptions) {
	for _, v := range violations {
		rule := v.Rule
		if !opts.NoColor {
			rule = ruleStyle.Render(rule)
		}
		fmt.Fprintf(w, "%s  %s  %s\n", rule, v.Path, v.Message)
	}
	printErrors(w, errs, opts)
	printSummary(w, len(violations), errs, opts)
}

// PrintTable renders violations as a bordered table.
func PrintTable(w io.Writer, violations []types.Violation, errs []error, opts PrintOptions) {
	if len(violations) > 0 {
		table := tablewriter.NewTable(w)
		table.Header([]string{"Rule", "Path", "Message"})
		for _, v := range violations {
			_ = table.Append([]string{v.Rule, v.Path, v.Message})
		}
		_ = table.Render()
	}
	printErrors(w, errs, opts)
	printSummary(w, len(violations), errs, opts)
}

// WriteCSV emits the report as CSV with a header row.
func WriteCSV(w io.Writer, violations []types.Violation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"path", "kind", "rule", "message"}); err != nil {
		return err
	}
	for _, v := range violations {
		if err := cw.Write([]string{v.Path, string(v.Kind), v.Rule, v.Message}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON emits the report as indented JSON. An empty report encodes as
// [] rather than null.
func WriteJSON(w io.Writer, violations []types.Violation) error {
	if violations == nil {
		violations = []types.Violation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(violations)
}

func printErrors(w io.Writer, errs []error, opts PrintOptions) {
	for _, err := range errs {
		line := "error: " + err.Error()
		if !opts.NoColor {
			line = errStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func printSummary(w io.Writer, nviol int, errs []error, opts PrintOptions) {
	fmt.Fprintln(w)
	if opts.Checked != "" {
		fmt.Fprintf(w, "Checked: %s\n", opts.Checked)
	}
	status := fmt.Sprintf("Found %d invalid path%s out of %d", nviol, plural(nviol), opts.EntriesChecked)
	if len(errs) > 0 {
		status += fmt.Sprintf(" (%d unreadable)", len(errs))
	}
	if !opts.NoColor {
		if nviol == 0 && len(errs) == 0 {
			status = okStyle.Render(status)
		} else {
			status = errStyle.Render(status)
		}
	}
	fmt.Fprintln(w, status)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %ss\n", strconv.FormatFloat(opts.Duration.Seconds(), 'f', 2, 64))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
