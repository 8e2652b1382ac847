package pipelines

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
	"github.com/flowloom/pipelex/internal/transform"
	"github.com/flowloom/pipelex/pkg/pipelexerr"
)

const transformType = "pipelines"

func init() {
	if err := transform.Register(transformType, func() transform.Config { return &PipelinesConfig{} }); err != nil {
		panic(err)
	}
}

// PipelinesConfig is the top-level configuration of the pipelines
// transform: two event-type groups, logs and metrics, each defaulting to
// empty. It is itself a transform.Config so that it can be nested inside
// another transform's configuration tree (and rejected by Nestable when
// that tree is itself a pipelines transform).
type PipelinesConfig struct {
	Logs    EventTypeConfig `yaml:"logs,omitempty"`
	Metrics EventTypeConfig `yaml:"metrics,omitempty"`
}

// Type implements transform.Config.
func (PipelinesConfig) Type() string { return transformType }

// InputType implements transform.Config.
func (PipelinesConfig) InputType() transform.DataType { return transform.DataTypeAny }

// OutputType implements transform.Config.
func (PipelinesConfig) OutputType() transform.DataType { return transform.DataTypeAny }

// Build always fails: PipelinesConfig is a pure rewrite node, never
// instantiated directly by the runtime plane. The host must call Expand
// first and instantiate the resulting leaf nodes instead.
func (PipelinesConfig) Build(context.Context) error {
	return pipelexerr.UnexpandedBuild()
}

// Clone implements transform.Config via a YAML marshal/unmarshal round
// trip, the documented Go analogue of the source's serialize/deserialize
// clone hack.
func (p PipelinesConfig) Clone() transform.Config {
	return transform.CloneRoundTrip(&p)
}

// Nestable implements the structural self-nesting check: a pipelines
// transform must not contain another pipelines transform anywhere in its
// logs pipelines' transform chains. Only Logs is walked, unchanged from
// the source - see the open question on Metrics in the design notes.
func (p PipelinesConfig) Nestable(ancestors transform.StringSet) error {
	if ancestors.Contains(transformType) {
		return pipelexerr.Nesting(transformType)
	}
	nested := ancestors.With(transformType)
	for _, pipeline := range p.Logs.Pipelines() {
		for _, t := range pipeline.Transforms() {
			if err := t.Nestable(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// Expand implements the PipelinesExpander algorithm: a router node fanning
// into the logs and metrics event-type groups, joined by a terminal
// no-op aliasing the whole transform under componentKey.
//
// id.router             dispatch function to dispatch logs and events depending on type
// id.router.logs        output of the dispatch function for logs
// id.router.metrics      output of the dispatch function for metrics
// id.logs                id of the expanded logs group
// id.metrics              id of the expanded metrics group
// id                      noop transform joining metrics and logs streams
func (p PipelinesConfig) Expand(componentKey key.Key, inputs []string) (*ordered.Map, bool, error) {
	pkgLogger.WithFields(map[string]any{"key": componentKey.String()}).Debug("expanding pipelines transform")

	out := ordered.New()

	routerKey := componentKey.Join("router")
	out.Insert(routerKey, ordered.Entry{
		Inputs: append([]string(nil), inputs...),
		Node:   transform.EventRouter{},
	})

	var aliases []string

	logsKey := componentKey.Join("logs")
	logsInputs := []string{routerKey.Join("logs").String()}
	logsExpanded, logsTail, err := p.Logs.Expand(logsKey, logsInputs)
	if err != nil {
		pkgLogger.Error(err, "failed to expand logs group")
		return nil, false, err
	}
	out.Extend(logsExpanded)
	aliases = append(aliases, logsTail...)

	metricsKey := componentKey.Join("metrics")
	metricsInputs := []string{routerKey.Join("metrics").String()}
	metricsExpanded, metricsTail, err := p.Metrics.Expand(metricsKey, metricsInputs)
	if err != nil {
		pkgLogger.Error(err, "failed to expand metrics group")
		return nil, false, err
	}
	out.Extend(metricsExpanded)
	aliases = append(aliases, metricsTail...)

	out.Insert(componentKey, ordered.Entry{Inputs: aliases, Node: transform.Noop{}})

	return out, true, nil
}

// MarshalYAML emits the type discriminator alongside the two event-type
// groups so a nested PipelinesConfig round trips through DecodeNode.
func (p PipelinesConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Type    string          `yaml:"type"`
		Logs    EventTypeConfig `yaml:"logs"`
		Metrics EventTypeConfig `yaml:"metrics"`
	}{Type: transformType, Logs: p.Logs, Metrics: p.Metrics}, nil
}

// GenerateConfig returns a representative example document, used by
// documentation and by the test that exercises end-to-end decode and
// expansion (mirroring the teacher corpus's GenerateConfig convention for
// producing runnable documentation snippets from code).
func GenerateConfig() []byte {
	return []byte(`logs:
  order: ["foo", "bar"]
  pipelines:
    foo:
      name: "foo pipeline"
      filter:
        type: datadog_search
        source: "source:s3"
      transforms:
        - type: noop
        - type: noop
    bar:
      name: "bar pipeline"
      transforms:
        - type: noop
`)
}

// FromYAML decodes a PipelinesConfig from a raw YAML document.
func FromYAML(data []byte) (*PipelinesConfig, error) {
	var cfg PipelinesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode pipelines configuration", err, nil)
	}
	return &cfg, nil
}
