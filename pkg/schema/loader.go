package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for schema file loading.
var (
	ErrFileNotFound = errors.New("schema file not found")
	ErrEmptyFile    = errors.New("schema file is empty")
)

// LoadFile reads a Schema from a YAML (.yaml, .yml) or JSON file.
//
//	name: blog
//	settings:
//	  url: http://localhost:3000
//	  connectTimeout: 2000
//	models:
//	  Dog:
//	    properties:
//	      name: {type: string}
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML decodes a Schema from YAML.
func ParseYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid schema YAML: %w", err)
	}
	s.normalize()
	return &s, nil
}

// ParseJSON decodes a Schema from JSON.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}
	s.normalize()
	return &s, nil
}

// normalize fills model names from their map keys and guarantees
// non-nil settings and property maps.
func (s *Schema) normalize() {
	if s.Settings == nil {
		s.Settings = make(map[string]any)
	}
	for name, d := range s.Models {
		if d == nil {
			d = &ModelDescriptor{}
			s.Models[name] = d
		}
		if d.Model == "" {
			d.Model = name
		}
		if d.Settings == nil {
			d.Settings = make(map[string]any)
		}
		if d.Properties == nil {
			d.Properties = make(map[string]Property)
		}
	}
}
