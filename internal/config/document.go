// Package config implements the ambient configuration-loading layer: YAML
// decoding, struct validation via validator/v10, and overlay merging of
// layered documents via mergo. None of this sits on the pure expansion
// path in internal/pipelines; it is the boundary the host uses to get a
// PipelinesConfig onto disk and back.
package config

import (
	"github.com/flowloom/pipelex/internal/pipelines"
)

// Document is the full configuration document a caller loads: library
// metadata plus the pipelines transform configuration itself.
type Document struct {
	Version     string                    `yaml:"version" validate:"required,semver"`
	Name        string                    `yaml:"name" validate:"required,min=1,max=100"`
	Description string                    `yaml:"description,omitempty"`
	Pipelines   pipelines.PipelinesConfig `yaml:"pipelines"`
}
