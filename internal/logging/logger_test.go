package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Format: "text", Output: &buf})

	l.Info(context.Background(), "should not appear")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), nil, "should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Format: "text", Output: &buf})
	l = l.WithComponent("pkgio")

	l.Debug(context.Background(), "loading entries", "count", 3)
	require.Contains(t, buf.String(), "component=pkgio")
	assert.Contains(t, buf.String(), "count=3")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Format: "text", Output: &buf})
	l = l.With("run", "unpack")

	l.Error(context.Background(), errors.New("boom"), "transform failed")
	out := buf.String()
	assert.Contains(t, out, "run=unpack")
	assert.Contains(t, out, "error=boom")
}

func TestDiscardLoggerIsSilent(t *testing.T) {
	l := Discard()
	l.Info(context.Background(), "anything")
	l.Error(context.Background(), errors.New("x"), "anything")
}
