package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// fileSettings mirrors the subset of Config settable from a JSONC config
// file.
type fileSettings struct {
	Key     string `json:"key"`
	KeyFile string `json:"key-file"`
	Media   string `json:"media"`
}

// Load reads a JSONC config file and fills any key or media options not
// already set by flags or environment. Flags always win.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var settings fileSettings
	if err := json.Unmarshal(clean, &settings); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if cfg.Key.String == "" && cfg.Key.File == "" {
		cfg.Key.String = settings.Key
		cfg.Key.File = settings.KeyFile
	}

	if (cfg.Media == "" || cfg.Media == "auto") && settings.Media != "" {
		cfg.Media = settings.Media
	}

	return nil
}
