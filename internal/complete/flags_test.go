package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSetLookup(t *testing.T) {
	fs := NewFlagSet(
		valueFlag("--name", "-n", nil),
		boolFlag("--force", "-f"),
	)

	f, ok := fs.Lookup("--name")
	require.True(t, ok)
	assert.True(t, f.TakesValue)

	short, ok := fs.Lookup("-n")
	require.True(t, ok)
	assert.Same(t, f, short)

	_, ok = fs.Lookup("--bogus")
	assert.False(t, ok)

	// Only exact spellings match; prefixes do not.
	_, ok = fs.Lookup("--nam")
	assert.False(t, ok)
}

func TestFlagSetSplitToken(t *testing.T) {
	fs := NewFlagSet(valueFlag("--name", "-n", nil))

	f, value, ok := fs.splitToken("--name=web")
	require.True(t, ok)
	assert.Equal(t, "--name", f.Long)
	assert.Equal(t, "web", value)

	f, value, ok = fs.splitToken("--name=")
	require.True(t, ok)
	assert.NotNil(t, f)
	assert.Equal(t, "", value)

	_, _, ok = fs.splitToken("--other=web")
	assert.False(t, ok)

	_, _, ok = fs.splitToken("name=web")
	assert.False(t, ok)
}

func TestFlagSetSpellings(t *testing.T) {
	fs := NewFlagSet(
		valueFlag("--name", "-n", nil),
		boolFlag("--force", ""),
	)

	assert.ElementsMatch(t, []string{"--name", "-n", "--force"}, fs.Spellings())
}
