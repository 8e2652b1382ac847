package transform

import (
	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
)

func init() {
	if err := Register("pipeline_filter", func() Config { return &PipelineFilter{} }); err != nil {
		panic(err)
	}
}

// PipelineFilter wraps a pipeline's filter predicate. It exposes two named
// outputs by convention: <key>.truthy for events matching Condition, and
// <key>.falsy for events that do not. The predicate itself is never
// evaluated here.
type PipelineFilter struct {
	Condition Condition `yaml:"condition"`
}

// NewPipelineFilter constructs a PipelineFilter wrapping the given condition.
func NewPipelineFilter(condition Condition) *PipelineFilter {
	return &PipelineFilter{Condition: condition}
}

// Type implements Config.
func (PipelineFilter) Type() string { return "pipeline_filter" }

// InputType implements Config.
func (PipelineFilter) InputType() DataType { return DataTypeAny }

// OutputType implements Config.
func (PipelineFilter) OutputType() DataType { return DataTypeAny }

// Expand implements Config; a PipelineFilter is always a leaf, its two
// named outputs addressed by key suffix rather than by further expansion.
func (PipelineFilter) Expand(key.Key, []string) (*ordered.Map, bool, error) {
	return nil, false, nil
}

// Nestable implements Config; a filter has no child transforms.
func (PipelineFilter) Nestable(StringSet) error {
	return nil
}

// Clone implements Config.
func (f PipelineFilter) Clone() Config {
	return &PipelineFilter{Condition: f.Condition}
}

// MarshalYAML emits the type discriminator alongside the wrapped
// condition so a PipelineFilter round trips through DecodeNode.
func (f PipelineFilter) MarshalYAML() (interface{}, error) {
	return struct {
		Type      string    `yaml:"type"`
		Condition Condition `yaml:"condition"`
	}{Type: "pipeline_filter", Condition: f.Condition}, nil
}
