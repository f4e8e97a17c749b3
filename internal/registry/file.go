// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/groundwork/econ-digest/pkg/types"
)

// sourcesFile is the on-disk representation of a source registry override.
type sourcesFile struct {
	Sources []types.Source `yaml:"sources"`
}

// LoadFile reads a source registry from a YAML file and validates it.
// Sources keep the order declared in the file.
func LoadFile(path string) ([]types.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var sf sourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}

	// Default parser kind so plain feed lists stay terse.
	for i := range sf.Sources {
		if sf.Sources[i].Parser == "" {
			sf.Sources[i].Parser = types.ParserRSS
		}
		if sf.Sources[i].Label == "" {
			sf.Sources[i].Label = sf.Sources[i].ID
		}
	}

	if err := Validate(sf.Sources); err != nil {
		return nil, fmt.Errorf("sources file %s: %w", path, err)
	}
	return sf.Sources, nil
}

// WriteFile saves a source registry to a YAML file, preserving order.
func WriteFile(path string, sources []types.Source) error {
	data, err := yaml.Marshal(&sourcesFile{Sources: sources})
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sources file: %w", err)
	}
	return nil
}
