package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file written by init.
const FileName = "bankstmt.yaml"

// Config represents the top-level bankstmt.yaml configuration.
type Config struct {
	Ledger     LedgerConfig   `yaml:"ledger"`
	Ingest     IngestConfig   `yaml:"ingest"`
	Git        GitConfig      `yaml:"git"`
	Categories []CategoryRule `yaml:"categories,omitempty"`
}

// LedgerConfig identifies the ledger.
type LedgerConfig struct {
	Name string `yaml:"name"`
}

// IngestConfig tunes statement parsing.
type IngestConfig struct {
	// DefaultProfile names a bank profile used when ingest is not
	// given one explicitly. Empty means header detection.
	DefaultProfile string `yaml:"default_profile,omitempty"`

	// ExtraDateFormats are Go time layouts tried after the built-in
	// ones.
	ExtraDateFormats []string `yaml:"extra_date_formats,omitempty"`
}

// GitConfig controls git snapshots of the ledger directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// CategoryRule maps merchant keywords to a report category, checked
// before the built-in rules.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Load reads a bankstmt.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Ledger: LedgerConfig{Name: name},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "bankstmt",
			AuthorEmail: "ledger@localhost",
		},
	}
}
