package transform

import (
	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
)

func init() {
	if err := Register("noop", func() Config { return &Noop{} }); err != nil {
		panic(err)
	}
}

// Noop is the terminal aliasing node every expander inserts so that a
// composite node's bare name resolves to a single upstream output. It
// carries no configuration and is never itself expanded.
type Noop struct{}

// Type implements Config.
func (Noop) Type() string { return "noop" }

// InputType implements Config.
func (Noop) InputType() DataType { return DataTypeAny }

// OutputType implements Config.
func (Noop) OutputType() DataType { return DataTypeAny }

// Expand implements Config; a Noop is always a leaf.
func (Noop) Expand(key.Key, []string) (*ordered.Map, bool, error) {
	return nil, false, nil
}

// Nestable implements Config; a Noop has no children to validate.
func (Noop) Nestable(StringSet) error {
	return nil
}

// Clone implements Config.
func (n Noop) Clone() Config {
	return Noop{}
}

// MarshalYAML emits the type discriminator so a Noop round trips through
// DecodeNode when serialized as part of a transforms sequence.
func (Noop) MarshalYAML() (interface{}, error) {
	return map[string]string{"type": "noop"}, nil
}
