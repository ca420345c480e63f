package diagnostics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFatalCodesClassification(t *testing.T) {
	assert.True(t, New(FormatNotSupported, "x").IsFatal())
	assert.True(t, New(DuplicateSymbol, "x").IsFatal())
	assert.False(t, Warning(ValidationWarning, "x").IsFatal())
	assert.False(t, Warning(GenericWarning, "x").IsFatal())
}

func TestContainerHasFatalAndAll(t *testing.T) {
	c := NewContainer()
	c.Warnf(ValidationWarning, "just a warning")
	require.False(t, c.HasFatal())
	require.True(t, c.HasAny())

	c.Addf(ParseError, "bad input")
	assert.True(t, c.HasFatal())
	assert.Len(t, c.All(), 2)
}

func TestContainerByFileAndByCode(t *testing.T) {
	c := NewContainer()
	c.Add(New(ParseError, "first").WithSpan(SourceSpan{File: "a.pa.yaml", StartLine: 3}))
	c.Add(New(ParseError, "second").WithSpan(SourceSpan{File: "b.pa.yaml", StartLine: 1}))
	c.Add(Warning(ValidationWarning, "third"))

	assert.Len(t, c.ByFile("a.pa.yaml"), 1)
	assert.Len(t, c.ByCode(ParseError), 2)
	assert.Len(t, c.ByCode(ValidationWarning), 1)
}

func TestDiagnosticErrorFormatting(t *testing.T) {
	d := New(InvalidPath, "bad path %q", "C:\\x").WithSpan(SourceSpan{File: "f", StartLine: 2, StartCol: 4})
	assert.Contains(t, d.Error(), "[InvalidPath]")
	assert.Contains(t, d.Error(), "f:2:4")

	cause := errors.New("underlying")
	d2 := AsInternal(cause)
	assert.Equal(t, InternalError, d2.Code)
	assert.ErrorIs(t, d2, cause)
}

func TestContainerAddIgnoresNil(t *testing.T) {
	c := NewContainer()
	c.Add(nil)
	assert.False(t, c.HasAny())
}
