// Package pipelines implements the three nested expansion levels of the
// pipelines transform: PipelineConfig, EventTypeConfig, and PipelinesConfig.
package pipelines

import (
	"gopkg.in/yaml.v3"

	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
	"github.com/flowloom/pipelex/internal/transform"
	"github.com/flowloom/pipelex/pkg/pipelexerr"
)

// PipelineConfig is the configuration of a single named pipeline: an
// optional filter predicate followed by an ordered chain of transforms.
// It is not itself a transform.Config - a PipelineConfig never appears as
// a node in the expanded graph, only the nodes its Expand method produces
// do.
type PipelineConfig struct {
	Name       string              `yaml:"name,omitempty" validate:"omitempty,max=200"`
	Filter     *transform.Condition `yaml:"filter,omitempty"`
	transforms []transform.Config
}

// Transforms returns the pipeline's ordered transform list. Exposed for
// tests and tooling that want to inspect a pipeline without re-expanding
// it, mirroring the teacher source's #[cfg(test)] accessor.
func (p PipelineConfig) Transforms() []transform.Config {
	return p.transforms
}

// UnmarshalYAML decodes a pipeline, dispatching each transforms list
// element through the transform registry by its "type" discriminator.
func (p *PipelineConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name       string               `yaml:"name"`
		Filter     *transform.Condition `yaml:"filter"`
		Transforms []yaml.Node          `yaml:"transforms"`
	}
	if err := value.Decode(&raw); err != nil {
		return pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode pipeline", err, nil)
	}

	p.Name = raw.Name
	p.Filter = raw.Filter
	p.transforms = make([]transform.Config, 0, len(raw.Transforms))
	for i := range raw.Transforms {
		cfg, err := transform.DecodeNode(&raw.Transforms[i])
		if err != nil {
			return err
		}
		p.transforms = append(p.transforms, cfg)
	}
	return nil
}

// MarshalYAML re-emits the pipeline, including each transform's type
// discriminator, so that Clone() round trips can reconstruct it.
func (p PipelineConfig) MarshalYAML() (interface{}, error) {
	nodes := make([]*yaml.Node, 0, len(p.transforms))
	for _, t := range p.transforms {
		node, err := transform.MarshalNode(t)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return struct {
		Name       string               `yaml:"name,omitempty"`
		Filter     *transform.Condition `yaml:"filter,omitempty"`
		Transforms []*yaml.Node         `yaml:"transforms,omitempty"`
	}{
		Name:       p.Name,
		Filter:     p.Filter,
		Transforms: nodes,
	}, nil
}

// Expand implements the PipelineExpander algorithm: it inserts an optional
// filter node, the pipeline's transform chain (recursively expanded where
// a transform itself expands), and ties the filter's falsy branch back in
// or inserts a terminal alias, depending on whether a filter is present.
//
// It returns, alongside the expanded map, the list of upstream references
// that represent this pipeline's effective output. When no filter is
// present this is always [componentKey.String()] (the terminal Noop); when
// a filter is present no node is inserted at componentKey itself (see
// tail step below), so the caller must use this returned list - rather
// than assuming componentKey.String() names a node - to keep every
// downstream input referencing either an earlier map key or one of the
// filter's named truthy/falsy output ports.
//
// A failing child transform's error is wrapped exactly once here, at the
// point of failure, via pipelexerr.Expansion; EventTypeConfig and
// PipelinesConfig propagate that error unchanged rather than wrapping it
// again at every enclosing frame.
func (p PipelineConfig) Expand(componentKey key.Key, inputs []string) (*ordered.Map, []string, error) {
	out := ordered.New()
	previous := append([]string(nil), inputs...)

	if p.Filter != nil {
		filterKey := componentKey.Join("filter")
		out.Insert(filterKey, ordered.Entry{
			Inputs: append([]string(nil), previous...),
			Node:   transform.NewPipelineFilter(*p.Filter),
		})
		previous = []string{filterKey.Join("truthy").String()}
	}

	for i, t := range p.transforms {
		transformKey := componentKey.JoinIndex(i)
		sub, expanded, err := t.Expand(transformKey, previous)
		if err != nil {
			return nil, nil, pipelexerr.Expansion(transformKey.String(), err)
		}
		if expanded {
			out.Extend(sub)
		} else {
			out.Insert(transformKey, ordered.Entry{
				Inputs: append([]string(nil), previous...),
				Node:   t.Clone(),
			})
		}
		previous = []string{transformKey.String()}
	}

	if p.Filter != nil {
		previous = append(previous, componentKey.Join("filter").Join("falsy").String())
	} else {
		out.Insert(componentKey, ordered.Entry{
			Inputs: previous,
			Node:   transform.Noop{},
		})
		previous = []string{componentKey.String()}
	}

	return out, previous, nil
}
