// Package cli implements the vitals command-line interface.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vitals/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// sysError marks a failure of the environment (filesystem, store) rather
// than of the request. Execute maps it to exitSysError.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemErr(err error) error { return &sysError{err: err} }

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool

	// configDataDir is the data_dir value loaded from config.yaml.
	// Set by the root PersistentPreRunE before any subcommand runs.
	configDataDir string
}

// NewRootCmd creates the top-level "vitals" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "vitals",
		Short: "A local store for personal health-record things",
		Long: "Vitals parses, validates, and stores health-record things\n" +
			"(weights, blood pressures, lab results, goals, and more) as\n" +
			"typed XML documents in a local vault.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(f.configDir)
			if err != nil {
				return systemErr(err)
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return systemErr(err)
			}
			f.configDataDir = cfg.GetString(cfgKeyDataDir)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&f.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "data directory (default: $(CWD)/.vitals-db)")
	root.PersistentFlags().BoolVar(&f.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(f))
	root.AddCommand(newTypesCmd(f))
	root.AddCommand(newValidateCmd(f))
	root.AddCommand(newShowCmd(f))
	root.AddCommand(newPutCmd(f))
	root.AddCommand(newGetCmd(f))
	root.AddCommand(newListCmd(f))
	root.AddCommand(newDeleteCmd(f))
	root.AddCommand(newExportCmd(f))
	root.AddCommand(newImportCmd(f))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var sys *sysError
		if errors.As(err, &sys) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
