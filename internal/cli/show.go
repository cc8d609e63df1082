package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.xml>",
		Short: "Print the display string of a thing document",
		Long: `Show parses the given XML document and prints its human-readable
display string. Rendering never fails; unset fields are simply omitted.

Example:
  vitals show weight.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, f, args[0])
		},
	}
}

// showOutput is the "vitals show --json" output.
type showOutput struct {
	Type    string `json:"type"`
	TypeID  string `json:"type_id"`
	Summary string `json:"summary"`
	EffDate string `json:"eff_date,omitempty"`
}

func runShow(cmd *cobra.Command, f *rootFlags, path string) error {
	thing, err := readDocument(path)
	if err != nil {
		return err
	}

	if f.jsonMode {
		out := showOutput{
			Type:    thing.Data.XMLName(),
			TypeID:  thing.TypeID().String(),
			Summary: thing.String(),
		}
		if thing.EffDate != nil {
			out.EffDate = thing.EffDate.Format("2006-01-02")
		}
		output, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), thing.String())
	return nil
}
