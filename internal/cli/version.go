package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/pkg/vitals"
)

const modulePath = "github.com/mesh-intelligence/vitals"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vitals version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "vitals v%s\nmodule: %s\n", vitals.Version, modulePath)
			return nil
		},
	}
}
