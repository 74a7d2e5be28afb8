package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const initHeader = `# folio configuration.
# Relative paths are resolved against the directory containing this file.
# FOLIO_ROOT, FOLIO_GALLERY and FOLIO_COLLECTIONS override the values below.
`

// Init creates a new configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(initHeader), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
