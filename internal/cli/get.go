package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

func newGetCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored thing as XML",
		Long: `Get fetches the thing with the given id from the vault and prints its
XML document.

Example:
  vitals get 0190a1b2-3c4d-7e5f-8a9b-0c1d2e3f4a5b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, f, args[0])
		},
	}
}

// getOutput is the "vitals get --json" output.
type getOutput struct {
	ThingID string `json:"thing_id"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
	XML     string `json:"xml"`
}

func runGet(cmd *cobra.Command, f *rootFlags, id string) error {
	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	thing, err := store.Get(id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) || errors.Is(err, record.ErrInvalidID) {
			return fmt.Errorf("thing %q not found", id)
		}
		return systemErr(fmt.Errorf("get thing: %w", err))
	}

	data, err := thing.Marshal()
	if err != nil {
		return systemErr(fmt.Errorf("serialize thing: %w", err))
	}

	if f.jsonMode {
		out := getOutput{
			ThingID: id,
			Type:    thing.Data.XMLName(),
			Summary: thing.String(),
			XML:     string(data),
		}
		output, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
