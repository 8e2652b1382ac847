package obslog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Writer: &buf, Component: "expand"})

	l.Debug("should not appear")
	l.Info("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, `"component":"expand"`)
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Writer: &buf, Level: "not-a-level"})
	l.Info("visible")

	assert.Contains(t, buf.String(), "visible")
}

func TestErrorIncludesCause(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Writer: &buf})
	l.Error(errors.New("boom"), "expansion failed")

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "expansion failed")
}

func TestDiscardLoggerIsSilent(t *testing.T) {
	t.Parallel()

	l := Discard()
	require.NotNil(t, l)
	l.Info("nothing should panic")
	l.Error(errors.New("x"), "nothing should panic")
}

func TestNilLoggerMethodsAreNoOps(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.Info("noop")
	l.Debug("noop")
	l.Warn("noop")
	l.Error(nil, "noop")
	assert.Nil(t, l.WithFields(map[string]any{"a": 1}))
}
