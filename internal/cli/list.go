package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

func newListCmd(f *rootFlags) *cobra.Command {
	var (
		typeName string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored things",
		Long: `List prints the things stored in the vault, newest first.

Example:
  vitals list
  vitals list --type weight
  vitals list --type blood-pressure --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, f, typeName, limit)
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only list things of this item type")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (0 = no limit)")

	return cmd
}

// listOutput is one row of "vitals list --json" output.
type listOutput struct {
	ThingID   string `json:"thing_id"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	EffDate   string `json:"eff_date,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

func runList(cmd *cobra.Command, f *rootFlags, typeName string, limit int) error {
	filter := record.Filter{Limit: limit}
	if typeName != "" {
		t, ok := record.TypeByName(typeName)
		if !ok {
			return fmt.Errorf("unknown item type %q (valid: %s)", typeName, typeNames())
		}
		filter.TypeID = t.ID
	}

	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(filter)
	if err != nil {
		return systemErr(fmt.Errorf("list things: %w", err))
	}

	if f.jsonMode {
		rows := make([]listOutput, len(entries))
		for i, e := range entries {
			rows[i] = listOutput{
				ThingID:   e.ID,
				Type:      e.TypeName,
				Summary:   e.Summary,
				UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
			}
			if e.EffDate != nil {
				rows[i].EffDate = e.EffDate.Format("2006-01-02")
			}
		}
		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	printEntryTable(cmd, entries)
	return nil
}

// printEntryTable prints entries in a human-readable table format.
func printEntryTable(cmd *cobra.Command, entries []record.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No things found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTYPE\tSUMMARY\tUPDATED")
	fmt.Fprintln(w, "--\t----\t-------\t-------")
	for _, e := range entries {
		summary := e.Summary
		if len(summary) > 40 {
			summary = summary[:37] + "..."
		}
		shortID := e.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID,
			e.TypeName,
			summary,
			e.UpdatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()
}
