// Package config holds run configuration for the CTF metadata validator
// CLI: which documents to check, whether to watch them, whether to serve
// validation over the network, and output formatting. It follows the
// teacher's own JSON-file configuration convention (internal/cli's
// former Config/LoadConfig/SaveConfig trio, generalized here to the
// validator's own option set rather than a generic CLI config).
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the persisted configuration for a validator run.
type Config struct {
	Verbose bool `json:"verbose"`
	Debug   bool `json:"debug"`

	// Paths are the metadata documents to validate. The ctfmeta
	// subcommands do not read Paths or Watch; validate and watch take
	// their documents from the command line.
	Paths []string `json:"paths"`

	Watch bool `json:"watch"`

	Serve     bool   `json:"serve"`
	ServeAddr string `json:"serve_addr"`

	// Parallel enables the concurrent-root-children validation mode of
	// spec.md §5 (errgroup-based, diagnostic lines still serialized in
	// declaration order).
	Parallel bool `json:"parallel"`

	JSON bool `json:"json"`
}

// Default returns the zero-value configuration with its documented
// defaults filled in.
func Default() *Config {
	return &Config{ServeAddr: "127.0.0.1:4343"}
}

// Load reads a JSON configuration file, returning Default() unchanged if
// path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
