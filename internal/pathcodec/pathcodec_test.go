package pathcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeFileName(t *testing.T) {
	assert.Equal(t, "%0d%09%21%24%2f%5e%25", EscapeFileName("\r\t!$/^%"))
	assert.Equal(t, "%%4523", EscapeFileName("\u4523"))
	assert.Equal(t, "0123456789AZaz[]_. \\", EscapeFileName("0123456789AZaz[]_. \\"))
}

func TestUnescapeFileName(t *testing.T) {
	assert.Equal(t, "foo-A", UnescapeFileName("foo-%41"))
	assert.Equal(t, "\u4523", UnescapeFileName("%%4523"))
	assert.Equal(t, "100% done", UnescapeFileName("100% done"))
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{
		"plain name.txt",
		"weird/\\name",
		"emoji\U0001F600here",
		"100% literal %",
		"",
	}
	for _, c := range cases {
		assert.Equal(t, c, UnescapeFileName(EscapeFileName(c)), "round trip for %q", c)
	}
}

func TestRelative(t *testing.T) {
	rel, err := Relative(`C:\Foo\Bar\Baz`, `C:\Foo`)
	require.NoError(t, err)
	assert.Equal(t, `Bar\Baz\`, rel)

	rel, err = Relative(`C:\Foo\Bar.msapp`, `C:\`)
	require.NoError(t, err)
	assert.Equal(t, `Foo\Bar.msapp`, rel)
}

func TestRelativeInvalid(t *testing.T) {
	_, err := Relative(`D:\Other\Thing`, `C:\Foo`)
	require.Error(t, err)
	var invalid *InvalidPathError
	assert.ErrorAs(t, err, &invalid)
}

func TestRelativeJoinRoundTrip(t *testing.T) {
	full := `C:\Foo\Bar\Baz.msapp`
	base := `C:\Foo`
	rel, err := Relative(full, base)
	require.NoError(t, err)
	assert.Equal(t, full, Join(base, rel))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "src/screens/screen1.json", Normalize(`Src\Screens\Screen1.json`))
	assert.Equal(t, "_root/file", Normalize("/root/file"))
}
