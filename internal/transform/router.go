package transform

import (
	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
)

func init() {
	if err := Register("event_router", func() Config { return &EventRouter{} }); err != nil {
		panic(err)
	}
}

// EventRouter is the type-dispatch node inserted at the top of a pipelines
// expansion. It fans incoming events out onto two named outputs, "logs"
// and "metrics", based on the runtime event type; other event kinds (e.g.
// traces) are dropped by the runtime plane, a behavior this library only
// declares and does not implement (see the open question on router
// pass-through in the design notes).
type EventRouter struct{}

// Type implements Config.
func (EventRouter) Type() string { return "event_router" }

// InputType implements Config.
func (EventRouter) InputType() DataType { return DataTypeAny }

// OutputType implements Config.
func (EventRouter) OutputType() DataType { return DataTypeAny }

// Expand implements Config; the router is always a leaf, expanded no
// further by this engine. Its "logs" and "metrics" named outputs are
// referenced by downstream keys as <router_key>.logs / <router_key>.metrics.
func (EventRouter) Expand(key.Key, []string) (*ordered.Map, bool, error) {
	return nil, false, nil
}

// Nestable implements Config; the router has no children to validate.
func (EventRouter) Nestable(StringSet) error {
	return nil
}

// Clone implements Config.
func (r EventRouter) Clone() Config {
	return EventRouter{}
}

// MarshalYAML emits the type discriminator so an EventRouter round trips
// through DecodeNode when serialized as part of a transforms sequence.
func (EventRouter) MarshalYAML() (interface{}, error) {
	return map[string]string{"type": "event_router"}, nil
}
