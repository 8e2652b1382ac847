package transform

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/flowloom/pipelex/pkg/pipelexerr"
)

// Factory constructs a zero-value instance of a registered transform type,
// ready to be populated by yaml.Node.Decode.
type Factory func() Config

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a decode factory for the given transform type. It mirrors
// the teacher's plugin registry (internal/plugin/registry.go): a global
// map guarded by a RWMutex, populated by each concrete transform's init().
func Register(transformType string, factory Factory) error {
	if factory == nil {
		return pipelexerr.New(pipelexerr.CodeUnknownType, fmt.Sprintf("factory for %q is nil", transformType), nil)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[transformType]; exists {
		return pipelexerr.New(pipelexerr.CodeUnknownType, fmt.Sprintf("transform type %q already registered", transformType), nil)
	}
	registry[transformType] = factory
	return nil
}

// New constructs a zero-value instance of the named transform type.
func New(transformType string) (Config, error) {
	registryMu.RLock()
	factory, ok := registry[transformType]
	registryMu.RUnlock()

	if !ok {
		return nil, pipelexerr.UnknownType(transformType)
	}
	return factory(), nil
}

// ResetRegistry clears all registrations. Intended for tests.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Factory)
}

// DecodeNode instantiates the transform whose type the node's "type" field
// names, then decodes the full node into it.
func DecodeNode(node *yaml.Node) (Config, error) {
	transformType, err := peekType(node)
	if err != nil {
		return nil, err
	}

	cfg, err := New(transformType)
	if err != nil {
		return nil, err
	}
	if err := node.Decode(cfg); err != nil {
		return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode transform", err, map[string]interface{}{"type": transformType})
	}
	return cfg, nil
}

func peekType(node *yaml.Node) (string, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return "", pipelexerr.New(pipelexerr.CodeParse, "transform entry must be a mapping with a type field", nil)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "type" {
			return node.Content[i+1].Value, nil
		}
	}
	return "", pipelexerr.New(pipelexerr.CodeParse, "transform entry is missing a type field", nil)
}

// MarshalNode encodes cfg into a standalone yaml.Node, suitable for
// splicing into a transforms sequence. Every registered transform type is
// expected to emit its own "type" discriminator field from MarshalYAML so
// that the node remains decodable via DecodeNode.
func MarshalNode(cfg Config) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to encode transform", err, map[string]interface{}{"type": cfg.Type()})
	}
	return &node, nil
}

// CloneRoundTrip implements Clone() for any registered transform by
// serializing to YAML and deserializing a fresh instance from the same
// registry. This is the Go analogue of the source's serialize/deserialize
// clone hack, used because Go has no generic deep-copy for interface
// values holding arbitrary concrete types.
func CloneRoundTrip(cfg Config) Config {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		panic(fmt.Sprintf("transform: clone marshal failed for type %q: %v", cfg.Type(), err))
	}

	clone, err := New(cfg.Type())
	if err != nil {
		panic(fmt.Sprintf("transform: clone of unregistered type %q: %v", cfg.Type(), err))
	}

	if err := yaml.Unmarshal(data, clone); err != nil {
		panic(fmt.Sprintf("transform: clone unmarshal failed for type %q: %v", cfg.Type(), err))
	}
	return clone
}
