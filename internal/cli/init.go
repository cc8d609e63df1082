package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/vitals/internal/paths"
	"github.com/mesh-intelligence/vitals/pkg/vault"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize vitals storage",
		Long:  "Create the configuration and data directories, then initialize the vault schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, f)
		},
	}
}

func runInit(cmd *cobra.Command, f *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return systemErr(fmt.Errorf("resolve config directory: %w", err))
	}
	dataDir, err := paths.ResolveDataDir(f.dataDir, f.configDataDir)
	if err != nil {
		return systemErr(fmt.Errorf("resolve data directory: %w", err))
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return systemErr(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := writeConfigIfMissing(configPath, dataDir); err != nil {
		return systemErr(fmt.Errorf("write config: %w", err))
	}

	// Opening the vault creates the data directory and applies the schema.
	store, err := vault.Open(dataDir, nil)
	if err != nil {
		return systemErr(fmt.Errorf("initialize vault: %w", err))
	}
	if err := store.Close(); err != nil {
		return systemErr(fmt.Errorf("finalize vault: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Vitals initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		DataDir: dataDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
