package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(f *rootFlags) *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import things from a JSONL file",
		Long: `Import loads things from the given file, one JSON object per line.
Lines that cannot be parsed are skipped. Imported things keep their ids,
so importing the same file twice is idempotent.

Example:
  vitals import --in backup.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, f, inPath)
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input file path (required)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runImport(cmd *cobra.Command, f *rootFlags, inPath string) error {
	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(inPath)
	if err != nil {
		return systemErr(fmt.Errorf("import vault: %w", err))
	}

	if f.jsonMode {
		output, err := json.MarshalIndent(struct {
			Imported int `json:"imported"`
		}{Imported: n}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d things from %s\n", n, inPath)
	return nil
}
