package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

func newTypesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered item types",
		Long:  "Types prints every registered item type with its root element name and type id.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, f)
		},
	}
}

// typeOutput is one row of "vitals types --json" output.
type typeOutput struct {
	Name   string `json:"name"`
	TypeID string `json:"type_id"`
}

func runTypes(cmd *cobra.Command, f *rootFlags) error {
	types := record.Types()

	if f.jsonMode {
		rows := make([]typeOutput, len(types))
		for i, t := range types {
			rows[i] = typeOutput{Name: t.Name, TypeID: t.ID.String()}
		}
		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal types: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE ID")
	fmt.Fprintln(w, "----\t-------")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.ID)
	}
	return w.Flush()
}
