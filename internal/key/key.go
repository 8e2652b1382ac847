// Package key implements the ComponentKey algebra: immutable, hierarchical
// dotted identifiers for nodes in an expanded transform DAG.
package key

import "strconv"

// Key is a hierarchical dotted identifier. The underlying type is a plain
// string so that equality, map keys, and sorting all fall out of Go's
// built-in string semantics, matching the source's "equality is
// string-equality over the full dotted path" contract.
type Key string

// New constructs a root key from a caller-supplied component name.
func New(root string) Key {
	return Key(root)
}

// Join returns a new key with the given string segment appended after a dot.
func (k Key) Join(segment string) Key {
	return Key(string(k) + "." + segment)
}

// JoinIndex returns a new key with the given integer segment appended after
// a dot, used for positional transform indices inside a pipeline.
func (k Key) JoinIndex(i int) Key {
	return k.Join(strconv.Itoa(i))
}

// String returns the full dotted identifier.
func (k Key) String() string {
	return string(k)
}
