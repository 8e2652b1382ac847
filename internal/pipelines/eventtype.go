package pipelines

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
	"github.com/flowloom/pipelex/internal/transform"
	"github.com/flowloom/pipelex/pkg/pipelexerr"
)

var eventTypeAllowedFields = map[string]bool{"order": true, "pipelines": true}

// EventTypeConfig is an ordered group of named pipelines for a single
// runtime event kind (logs or metrics).
type EventTypeConfig struct {
	order     *[]string
	pipelines map[string]PipelineConfig
}

// Order returns the explicit pipeline ordering, or nil when absent and
// lexicographic ordering applies.
func (e EventTypeConfig) Order() *[]string {
	return e.order
}

// Pipelines returns the name-to-pipeline mapping.
func (e EventTypeConfig) Pipelines() map[string]PipelineConfig {
	return e.pipelines
}

// UnmarshalYAML decodes an event type group, rejecting unknown top-level
// fields (the distilled spec's deny_unknown_fields requirement), unlike
// the permissive PipelinesConfig that contains it.
func (e *EventTypeConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return pipelexerr.New(pipelexerr.CodeParse, "event type configuration must be a mapping", nil)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		field := value.Content[i].Value
		if !eventTypeAllowedFields[field] {
			return pipelexerr.New(pipelexerr.CodeParse, fmt.Sprintf("unknown field %q in event type configuration", field), nil)
		}
	}

	var raw struct {
		Order     *[]string                 `yaml:"order"`
		Pipelines map[string]PipelineConfig `yaml:"pipelines"`
	}
	if err := value.Decode(&raw); err != nil {
		return pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode event type configuration", err, nil)
	}

	e.order = raw.Order
	e.pipelines = raw.Pipelines
	return nil
}

// MarshalYAML re-emits the event type group.
func (e EventTypeConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Order     *[]string                 `yaml:"order,omitempty"`
		Pipelines map[string]PipelineConfig `yaml:"pipelines,omitempty"`
	}{Order: e.order, Pipelines: e.pipelines}, nil
}

// names returns the pipeline names in expansion order: the explicit Order
// list when present (entries absent from Pipelines are silently skipped,
// an open question preserved from the source), else the pipeline names
// sorted lexicographically.
func (e EventTypeConfig) names() []string {
	if e.order != nil {
		return *e.order
	}
	names := make([]string, 0, len(e.pipelines))
	for name := range e.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand implements the EventTypeExpander algorithm: pipelines are
// expanded serially, each one's output feeding the next, terminated by a
// no-op aliasing node at componentKey.
//
// Only a genuinely empty pipelines map contributes no nodes at all, not
// even the alias: it returns an empty tail so the caller omits it from
// the joined inputs, per the "empty pipelines map contributes no nodes"
// boundary behavior (S5). A non-empty pipelines map whose order names
// none of its keys (or an explicit empty order) still gets the terminal
// Noop, passing componentKey's external inputs straight through, matching
// the unconditional alias insert in the source's EventTypeConfig::expand.
func (e EventTypeConfig) Expand(componentKey key.Key, inputs []string) (*ordered.Map, []string, error) {
	if len(e.pipelines) == 0 {
		return ordered.New(), nil, nil
	}

	names := e.names()
	out := ordered.New()
	previous := append([]string(nil), inputs...)

	for _, name := range names {
		pipeline, ok := e.pipelines[name]
		if !ok {
			continue
		}
		pipelineKey := componentKey.Join(name)
		sub, tail, err := pipeline.Expand(pipelineKey, previous)
		if err != nil {
			return nil, nil, err
		}
		out.Extend(sub)
		previous = tail
	}

	out.Insert(componentKey, ordered.Entry{Inputs: previous, Node: transform.Noop{}})
	return out, []string{componentKey.String()}, nil
}
