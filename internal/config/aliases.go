package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// AliasFileName holds the user-supplied merchant alias table.
const AliasFileName = "aliases.yaml"

// aliasFile is the YAML shape of aliases.yaml.
type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliases reads an alias table mapping query terms to merchant
// substrings. A missing file yields an empty table.
func LoadAliases(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading aliases: %w", err)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing aliases: %w", err)
	}
	return f.Aliases, nil
}

// SaveAliases writes an alias table to a YAML file.
func SaveAliases(path string, aliases map[string][]string) error {
	data, err := yaml.Marshal(aliasFile{Aliases: aliases})
	if err != nil {
		return fmt.Errorf("marshaling aliases: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing aliases: %w", err)
	}
	return nil
}

// DefaultAliases is the starter table written by init.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"coffee":    {"starbucks", "dunkin", "peets"},
		"rideshare": {"uber", "lyft"},
	}
}
