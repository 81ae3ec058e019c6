package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	DefaultURL      string   `yaml:"default_url"`
	Locations       []string `yaml:"locations"`
	RecommendedSize string   `yaml:"recommended_size"`
}

type catalogFile struct {
	Images []catalogEntry `yaml:"images"`
}

func loadCatalog() ([]catalogEntry, error) {
	var parsed catalogFile
	if err := yaml.Unmarshal(catalogYAML, &parsed); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if len(parsed.Images) == 0 {
		return nil, fmt.Errorf("embedded catalog is empty")
	}
	seen := make(map[string]struct{}, len(parsed.Images))
	for _, entry := range parsed.Images {
		if entry.ID == "" || entry.Name == "" || entry.Category == "" || entry.DefaultURL == "" {
			return nil, fmt.Errorf("catalog entry %q missing required fields", entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}
	return parsed.Images, nil
}
