package pipelines

import (
	stdErrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowloom/pipelex/internal/key"
	"github.com/flowloom/pipelex/internal/ordered"
	"github.com/flowloom/pipelex/internal/transform"
)

// fakeFailingTransform always fails to expand, standing in for a child
// transform whose Expand call returns an error.
type fakeFailingTransform struct{}

func (fakeFailingTransform) Type() string                      { return "fake_failing" }
func (fakeFailingTransform) InputType() transform.DataType     { return transform.DataTypeAny }
func (fakeFailingTransform) OutputType() transform.DataType    { return transform.DataTypeAny }
func (fakeFailingTransform) Nestable(transform.StringSet) error { return nil }
func (fakeFailingTransform) Clone() transform.Config            { return fakeFailingTransform{} }

func (fakeFailingTransform) Expand(key.Key, []string) (*ordered.Map, bool, error) {
	return nil, false, stdErrors.New("boom")
}

// A failing child transform's error is wrapped exactly once, as an
// EXPANSION_ERROR naming the failing transform's key.
func TestPipelineConfigExpandWrapsChildFailureOnce(t *testing.T) {
	t.Parallel()

	cfg := PipelineConfig{transforms: []transform.Config{fakeFailingTransform{}}}
	_, _, err := cfg.Expand(key.New("root.logs.foo"), []string{"syslog"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "root.logs.foo.0")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, strings.Count(err.Error(), "EXPANSION_ERROR"))
}

func keyStrings(m interface{ Keys() []key.Key }) []string {
	keys := m.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func TestPipelineConfigExpandNoFilterTwoTransforms(t *testing.T) {
	t.Parallel()

	cfg := PipelineConfig{transforms: []transform.Config{transform.Noop{}, transform.Noop{}}}
	out, tail, err := cfg.Expand(key.New("root.logs.bar"), []string{"syslog"})
	require.NoError(t, err)

	assert.Equal(t, []string{"root.logs.bar.0", "root.logs.bar.1", "root.logs.bar"}, keyStrings(out))
	assert.Equal(t, []string{"root.logs.bar"}, tail)

	entry, ok := out.Get(key.New("root.logs.bar.0"))
	require.True(t, ok)
	assert.Equal(t, []string{"syslog"}, entry.Inputs)

	last, ok := out.Get(key.New("root.logs.bar"))
	require.True(t, ok)
	assert.Equal(t, []string{"root.logs.bar.1"}, last.Inputs)
}

func TestPipelineConfigExpandZeroTransformsNoFilter(t *testing.T) {
	t.Parallel()

	cfg := PipelineConfig{}
	out, tail, err := cfg.Expand(key.New("root.logs.only"), []string{"in"})
	require.NoError(t, err)

	assert.Equal(t, []string{"root.logs.only"}, keyStrings(out))
	assert.Equal(t, []string{"root.logs.only"}, tail)
}

func TestPipelineConfigExpandFilterOnlyZeroTransforms(t *testing.T) {
	t.Parallel()

	cond := transform.Condition{Type: "datadog_search"}
	cfg := PipelineConfig{Filter: &cond}
	out, tail, err := cfg.Expand(key.New("root.logs.only"), []string{"in"})
	require.NoError(t, err)

	// S6: pipeline filter only, no transforms. The pipeline itself inserts
	// only the filter node; the reunion of truthy and falsy is left to the
	// caller (EventTypeConfig), not inserted here.
	assert.Equal(t, []string{"root.logs.only.filter"}, keyStrings(out))
	assert.Equal(t, []string{"root.logs.only.filter.truthy", "root.logs.only.filter.falsy"}, tail)

	entry, ok := out.Get(key.New("root.logs.only.filter"))
	require.True(t, ok)
	assert.Equal(t, []string{"in"}, entry.Inputs)
}

// fakeExpandingTransform is a child transform that itself expands into a
// two-node sub-graph, standing in for a real recursively-expandable
// transform (a nested PipelinesConfig, for instance) without pulling the
// transform package's registry machinery into this test.
type fakeExpandingTransform struct{}

func (fakeExpandingTransform) Type() string                       { return "fake_expanding" }
func (fakeExpandingTransform) InputType() transform.DataType      { return transform.DataTypeAny }
func (fakeExpandingTransform) OutputType() transform.DataType     { return transform.DataTypeAny }
func (fakeExpandingTransform) Nestable(transform.StringSet) error { return nil }
func (fakeExpandingTransform) Clone() transform.Config            { return fakeExpandingTransform{} }

func (fakeExpandingTransform) Expand(k key.Key, inputs []string) (*ordered.Map, bool, error) {
	sub := ordered.New()
	innerKey := k.Join("inner")
	sub.Insert(innerKey, ordered.Entry{Inputs: append([]string(nil), inputs...), Node: transform.Noop{}})
	sub.Insert(k, ordered.Entry{Inputs: []string{innerKey.String()}, Node: transform.Noop{}})
	return sub, true, nil
}

// A transform whose own Expand reports expanded=true flattens its sub-graph into
// the pipeline's output map in place, rather than being inserted verbatim
// as a leaf; the convention is that its last key equals the transform's
// own componentKey, which PipelineConfig.Expand relies on to chain
// "previous" forward.
func TestPipelineConfigExpandFlattensRecursiveChildTransform(t *testing.T) {
	t.Parallel()

	cfg := PipelineConfig{transforms: []transform.Config{fakeExpandingTransform{}, transform.Noop{}}}
	out, tail, err := cfg.Expand(key.New("root.logs.foo"), []string{"syslog"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"root.logs.foo.0.inner",
		"root.logs.foo.0",
		"root.logs.foo.1",
		"root.logs.foo",
	}, keyStrings(out))
	assert.Equal(t, []string{"root.logs.foo"}, tail)

	inner, ok := out.Get(key.New("root.logs.foo.0.inner"))
	require.True(t, ok)
	assert.Equal(t, []string{"syslog"}, inner.Inputs)

	secondTransform, ok := out.Get(key.New("root.logs.foo.1"))
	require.True(t, ok)
	assert.Equal(t, []string{"root.logs.foo.0"}, secondTransform.Inputs)
}

func TestPipelineConfigExpandFilterWithTransforms(t *testing.T) {
	t.Parallel()

	cond := transform.Condition{Type: "datadog_search"}
	cfg := PipelineConfig{
		Filter:     &cond,
		transforms: []transform.Config{transform.Noop{}, transform.Noop{}},
	}
	out, tail, err := cfg.Expand(key.New("root.logs.foo"), []string{"root.router.logs"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"root.logs.foo.filter",
		"root.logs.foo.0",
		"root.logs.foo.1",
	}, keyStrings(out))
	assert.Equal(t, []string{"root.logs.foo.filter.falsy"}, tail[1:])
	assert.Equal(t, "root.logs.foo.1", tail[0])

	filterEntry, ok := out.Get(key.New("root.logs.foo.filter"))
	require.True(t, ok)
	assert.Equal(t, []string{"root.router.logs"}, filterEntry.Inputs)

	firstTransform, ok := out.Get(key.New("root.logs.foo.0"))
	require.True(t, ok)
	assert.Equal(t, []string{"root.logs.foo.filter.truthy"}, firstTransform.Inputs)
}
