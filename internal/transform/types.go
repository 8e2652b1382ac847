package transform

// DataType tags the kind of event a transform consumes or produces.
type DataType string

const (
	DataTypeLog    DataType = "log"
	DataTypeMetric DataType = "metric"
	DataTypeAny    DataType = "any"
)

// StringSet is the ancestor-type accumulator threaded through Nestable.
type StringSet map[string]struct{}

// NewStringSet returns a StringSet containing the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// With returns a new StringSet containing s's members plus member.
func (s StringSet) With(member string) StringSet {
	out := make(StringSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[member] = struct{}{}
	return out
}

// Contains reports whether member is present in s.
func (s StringSet) Contains(member string) bool {
	_, ok := s[member]
	return ok
}
