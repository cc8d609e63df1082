package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPutCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file.xml>",
		Short: "Store a thing document in the vault",
		Long: `Put parses the given XML document and stores it in the vault. A bare
item fragment is wrapped in a new thing; a full <thing> envelope keeps
its id, so putting it again overwrites the stored copy.

Example:
  vitals put weight.xml
  vitals put reading.xml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd, f, args[0])
		},
	}
}

// putOutput is the "vitals put --json" output.
type putOutput struct {
	ThingID string `json:"thing_id"`
	Type    string `json:"type"`
}

func runPut(cmd *cobra.Command, f *rootFlags, path string) error {
	thing, err := readDocument(path)
	if err != nil {
		return err
	}

	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Put(thing)
	if err != nil {
		return fmt.Errorf("store thing: %w", err)
	}

	if f.jsonMode {
		out := putOutput{ThingID: id, Type: thing.Data.XMLName()}
		output, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored thing: %s\n", id)
	return nil
}
