package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPipelineFilterIsLeaf(t *testing.T) {
	t.Parallel()

	f := NewPipelineFilter(Condition{Type: "datadog_search"})
	sub, expanded, err := f.Expand("root.logs.foo.filter", []string{"in"})
	require.NoError(t, err)
	require.False(t, expanded)
	require.Nil(t, sub)
}

func TestConditionRoundTripsThroughYAML(t *testing.T) {
	t.Parallel()

	var cond Condition
	require.NoError(t, yaml.Unmarshal([]byte(`type: datadog_search
source: "source:s3"
`), &cond))
	require.Equal(t, "datadog_search", cond.Type)

	out, err := yaml.Marshal(cond)
	require.NoError(t, err)
	require.Contains(t, string(out), "source:s3")
}
