// Package schema holds the model metadata an ORM registers with a data
// source, and the Adapter contract the ORM drives.
package schema

import (
	"context"
	"fmt"
)

// Record is a single resource instance: field name to decoded JSON value.
type Record = map[string]any

// Property describes one model property.
type Property struct {
	Type    string         `yaml:"type" json:"type"`
	Index   bool           `yaml:"index,omitempty" json:"index,omitempty"`
	Default any            `yaml:"default,omitempty" json:"default,omitempty"`
	Params  map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// ModelDescriptor is the schema metadata registered for a model.
type ModelDescriptor struct {
	Model      string              `yaml:"model" json:"model"`
	Settings   map[string]any      `yaml:"settings,omitempty" json:"settings,omitempty"`
	Properties map[string]Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Adapter is the persistence contract a data source implements. Results
// that the ORM treats as "absent" are reported as zero values with a nil
// error: Find returns a nil Record, Exists returns false.
type Adapter interface {
	Define(d *ModelDescriptor)
	DefineProperty(model, prop string, p Property) error

	Create(ctx context.Context, model string, rec Record) (any, error)
	Save(ctx context.Context, model string, rec Record) (Record, error)
	UpdateAttributes(ctx context.Context, model string, id any, rec Record) (Record, error)
	Destroy(ctx context.Context, model string, id any) error
	Exists(ctx context.Context, model string, id any) (bool, error)
	Find(ctx context.Context, model string, id any) (Record, error)
	All(ctx context.Context, model string, q any) ([]Record, error)
	DestroyAll(ctx context.Context, model string) error
	Count(ctx context.Context, model string, q any) (int, error)
}

// Initializer binds an adapter to a schema from the schema's settings.
type Initializer func(s *Schema) error

// Schema is a named set of models sharing one data source.
type Schema struct {
	Name     string                      `yaml:"name" json:"name"`
	Settings map[string]any              `yaml:"settings,omitempty" json:"settings,omitempty"`
	Models   map[string]*ModelDescriptor `yaml:"models,omitempty" json:"models,omitempty"`

	// Adapter is set by an Initializer.
	Adapter Adapter `yaml:"-" json:"-"`
}

// Connect runs init against s and registers every model in s.Models with
// the resulting adapter.
func (s *Schema) Connect(init Initializer) error {
	if err := init(s); err != nil {
		return fmt.Errorf("initialize schema %q: %w", s.Name, err)
	}
	if s.Adapter == nil {
		return fmt.Errorf("initialize schema %q: no adapter bound", s.Name)
	}
	for name, d := range s.Models {
		if d.Model == "" {
			d.Model = name
		}
		s.Adapter.Define(d)
	}
	return nil
}
