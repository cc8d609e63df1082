package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

func newDeleteCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a thing from the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, f, args[0])
		},
	}
}

func runDelete(cmd *cobra.Command, f *rootFlags, id string) error {
	store, err := openStore(f)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(id); err != nil {
		if errors.Is(err, record.ErrNotFound) || errors.Is(err, record.ErrInvalidID) {
			return fmt.Errorf("thing %q not found", id)
		}
		return systemErr(fmt.Errorf("delete thing: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted thing: %s\n", id)
	return nil
}
