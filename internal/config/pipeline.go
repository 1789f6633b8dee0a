package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"augkit/internal/spec"
)

const SupportedSchema = "v1"

// LoadPipelineSpec parses a pipeline YAML, validates schema_version and
// fills the input defaults.
func LoadPipelineSpec(path string) (spec.File, error) {
	var doc spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("pipeline %s: %w", path, err)
	}
	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SupportedSchema
	}
	if doc.SchemaVersion != SupportedSchema {
		return doc, fmt.Errorf("pipeline schema_version %q not supported (want %q)", doc.SchemaVersion, SupportedSchema)
	}
	if doc.Pipeline.Name == "" {
		return doc, errors.New("pipeline: root transform has no name")
	}
	in := &doc.Input
	if in.Width <= 0 {
		in.Width = 64
	}
	if in.Height <= 0 {
		in.Height = 64
	}
	if in.Channels <= 0 {
		in.Channels = 3
	}
	return doc, nil
}
