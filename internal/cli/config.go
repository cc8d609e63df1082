// Config loading for the vitals CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys recognized in config.yaml.
	cfgKeyDataDir = "data_dir"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing directory or config.yaml is not an error; "vitals init"
// creates both.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
