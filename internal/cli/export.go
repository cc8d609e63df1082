package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(f *rootFlags) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the vault to a JSONL file",
		Long: `Export writes every stored thing to the given file, one JSON object
per line. The file is written atomically.

Example:
  vitals export --out backup.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, f, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output file path (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, f *rootFlags, outPath string) error {
	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Export(outPath); err != nil {
		return systemErr(fmt.Errorf("export vault: %w", err))
	}

	if f.jsonMode {
		output, err := json.MarshalIndent(struct {
			Path string `json:"path"`
		}{Path: outPath}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported vault to %s\n", outPath)
	return nil
}
