// Package ordered provides a minimal insertion-ordered map from
// ComponentKey to an expansion entry. Go has no built-in ordered map; the
// teacher repo's own convention whenever operator-visible order matters is
// to keep a plain map alongside an explicit ordered slice of keys (see
// Graph.Levels in the engine package and sortedNodes in the plugin
// dependency graph) rather than reach for a third-party ordered-map
// library. This type follows that precedent.
package ordered

import "github.com/flowloom/pipelex/internal/key"

// Node is anything that can sit in an expansion entry's node slot. The
// transform package's TransformConfig satisfies this; it is declared here
// as a minimal interface so this package has no dependency on transform.
type Node interface {
	Type() string
}

// Entry is one row of the map: the upstream references feeding this node,
// and the node itself.
type Entry struct {
	Inputs []string
	Node   Node
}

// Map is an insertion-ordered mapping of key.Key to Entry.
type Map struct {
	keys    []key.Key
	entries map[key.Key]Entry
}

// New returns an empty ordered map.
func New() *Map {
	return &Map{entries: make(map[key.Key]Entry)}
}

// Insert adds or overwrites the entry at k, appending k to the order only
// the first time it is inserted.
func (m *Map) Insert(k key.Key, entry Entry) {
	if m.entries == nil {
		m.entries = make(map[key.Key]Entry)
	}
	if _, exists := m.entries[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.entries[k] = entry
}

// Extend appends every entry of other, in order, to m. Keys already
// present in m keep their original position but take other's entry, as
// with Insert; the caller
// is responsible for ensuring the merged key sets are disjoint (expansion
// invariant #2).
func (m *Map) Extend(other *Map) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		m.Insert(k, other.entries[k])
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []key.Key {
	out := make([]key.Key, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get retrieves the entry at k.
func (m *Map) Get(k key.Key) (Entry, bool) {
	e, ok := m.entries[k]
	return e, ok
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Last returns the most recently inserted key, or the zero Key if empty.
func (m *Map) Last() key.Key {
	if len(m.keys) == 0 {
		return ""
	}
	return m.keys[len(m.keys)-1]
}
