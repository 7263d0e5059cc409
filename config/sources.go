package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source is one candidate file in a sources manifest.
type Source struct {
	File string `yaml:"file"`
	Year int    `yaml:"year"`
}

// Sources maps dataset names to their candidate files, newest first.
type Sources map[string][]Source

// LoadSources reads a YAML manifest. Relative file paths are resolved
// against dataDir.
func LoadSources(path, dataDir string) (Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("error parsing sources file %s: %w", path, err)
	}

	for name, list := range sources {
		if len(list) == 0 {
			return nil, fmt.Errorf("dataset %q lists no source files", name)
		}
		for i, src := range list {
			if src.File == "" {
				return nil, fmt.Errorf("dataset %q entry %d has no file", name, i+1)
			}
			if !filepath.IsAbs(src.File) {
				list[i].File = filepath.Join(dataDir, src.File)
			}
		}
	}
	return sources, nil
}
