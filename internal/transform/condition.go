package transform

import "gopkg.in/yaml.v3"

// Condition is the opaque predicate-config contract promised to the
// external filter-evaluation collaborator (the runtime's condition
// evaluator, explicitly out of scope for this engine). The engine never
// evaluates a Condition; it only threads the original document node
// through PipelineFilter so the runtime plane can build the real
// predicate later.
type Condition struct {
	Type string
	raw  yaml.Node
}

// UnmarshalYAML captures the condition's type discriminator while
// preserving the full original node for later re-serialization.
func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	var peek struct {
		Type string `yaml:"type"`
	}
	if err := value.Decode(&peek); err != nil {
		return err
	}
	c.Type = peek.Type
	c.raw = *value
	return nil
}

// MarshalYAML re-emits the original document node when available, falling
// back to just the type discriminator for programmatically constructed
// conditions.
func (c Condition) MarshalYAML() (interface{}, error) {
	if c.raw.Kind != 0 {
		return c.raw, nil
	}
	return map[string]string{"type": c.Type}, nil
}
