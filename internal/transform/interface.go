// Package transform defines the TransformConfig capability consumed by the
// pipelines expander, a type registry used for polymorphic YAML decoding
// and value-copy cloning, and the handful of built-in leaf transforms the
// host exposes to the expansion engine (Noop, EventRouter, PipelineFilter).
package transform

import (
	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
)

// Config is the capability every node the expander may encounter must
// satisfy. It is the Go rendering of the source's TransformConfig trait.
type Config interface {
	// Type returns the registry key used for (de)serialization and for
	// nesting diagnostics, e.g. "noop", "pipelines".
	Type() string

	// InputType and OutputType report the event kinds this transform
	// consumes and produces.
	InputType() DataType
	OutputType() DataType

	// Expand rewrites this node into a sub-graph. A false second return
	// value means the node is a leaf: the caller must insert it verbatim
	// under key with the supplied inputs instead.
	Expand(k key.Key, inputs []string) (*ordered.Map, bool, error)

	// Nestable performs the structural self-nesting check, given the set
	// of ancestor transform types already on the expansion path.
	Nestable(ancestors StringSet) error

	// Clone returns an independent value-copy of this config.
	Clone() Config
}

// compile-time assertion that ordered.Node is satisfied by Config.
var _ interface{ Type() string } = (Config)(nil)
