package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

// renderList writes rows in the selected output format. The table
// renderer is per-resource; json and yaml render the typed rows
// directly.
func renderList[T any](cmd *cobra.Command, rows []T, table func(w io.Writer, rows []T)) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(rows)
	default:
		table(cmd.OutOrStdout(), rows)
		return nil
	}
}

// renderEntity writes one entity. Table mode falls back to yaml, which
// reads well for a single record.
func renderEntity(cmd *cobra.Command, v any) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(v)
}

// newTable returns a tabwriter with the header row already written.
func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

// confirm asks the operator to confirm a destructive action. The --yes
// flag skips the prompt.
func confirm(cmd *cobra.Command, prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// refName renders a relational reference for table output. An unset
// reference renders as "-".
func refName(r courseapi.Ref) string {
	if !r.Valid {
		return "-"
	}
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// yesNo renders a boolean for table output.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// shortID renders the trailing 8 characters of an ID, the way the
// order listing abbreviates them.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// localDate renders a timestamp as a date, or "-" when unset.
func localDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
