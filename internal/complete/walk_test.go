package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlagSet() *FlagSet {
	return NewFlagSet(
		valueFlag("--name", "-n", nil),
		valueFlag("--log-driver", "", nil),
		boolFlag("--force", "-f"),
		boolFlag("--all", "-a"),
	)
}

func TestFirstFreeArgSkipsBooleanFlags(t *testing.T) {
	fs := testFlagSet()
	words := []string{"rm", "--force", "-a", "c1"}

	idx := firstFreeArg(words, 1, 3, fs)
	assert.Equal(t, 3, idx)
}

func TestFirstFreeArgSkipsValueConsumingFlags(t *testing.T) {
	fs := testFlagSet()

	// All tokenizations of the same flag/value pair must resolve to the
	// same free argument.
	cases := [][]string{
		{"run", "--name", "web", "img"},
		{"run", "--name=web", "img"},
		{"run", "--name", "=", "web", "img"},
		{"run", "--name=", "web", "img"},
		{"run", "-n", "web", "img"},
	}

	for _, words := range cases {
		idx := firstFreeArg(words, 1, len(words)-1, fs)
		require.Less(t, idx, len(words), "words: %v", words)
		assert.Equal(t, "img", words[idx], "words: %v", words)
	}
}

func TestFirstFreeArgIsIdempotent(t *testing.T) {
	fs := testFlagSet()
	words := []string{"run", "--force", "--name", "web", "img", "extra"}

	first := firstFreeArg(words, 1, 5, fs)
	second := firstFreeArg(words, 1, 5, fs)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, first)
}

func TestFirstFreeArgCursorInsideFlagValue(t *testing.T) {
	fs := testFlagSet()

	// Cursor is the value of --name; the walk must land beyond the cursor,
	// never at it, so no positional candidates get offered.
	words := []string{"run", "--name", ""}
	idx := firstFreeArg(words, 1, 2, fs)
	assert.Greater(t, idx, 2)
}

func TestFirstFreeArgUnknownFlagSkipsOne(t *testing.T) {
	fs := testFlagSet()
	words := []string{"run", "--bogus", "img"}

	idx := firstFreeArg(words, 1, 2, fs)
	assert.Equal(t, 2, idx)
}

func TestFreeArgSlot(t *testing.T) {
	fs := testFlagSet()

	slot, ok := freeArgSlot([]string{"tag", "repo:1.0", ""}, 1, 2, fs)
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	slot, ok = freeArgSlot([]string{"rm", "--force", ""}, 1, 2, fs)
	require.True(t, ok)
	assert.Equal(t, 0, slot)

	_, ok = freeArgSlot([]string{"run", "--name", ""}, 1, 2, fs)
	assert.False(t, ok)
}

func TestFlagValue(t *testing.T) {
	fs := testFlagSet()
	driver, _ := fs.Lookup("--log-driver")

	cases := []struct {
		name  string
		words []string
		cword int
		want  string
		found bool
	}{
		{"separate value", []string{"run", "--log-driver", "syslog", ""}, 3, "syslog", true},
		{"joined value", []string{"run", "--log-driver=syslog", ""}, 2, "syslog", true},
		{"equals artifact", []string{"run", "--log-driver", "=", "syslog", ""}, 4, "syslog", true},
		{"absent", []string{"run", ""}, 1, "", false},
		{"after cursor ignored", []string{"run", "", "--log-driver", "syslog"}, 1, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := flagValue(tc.words, 1, tc.cword, driver)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasFlag(t *testing.T) {
	fs := testFlagSet()
	force, _ := fs.Lookup("--force")

	assert.True(t, hasFlag([]string{"rm", "--force", ""}, 1, 2, force))
	assert.True(t, hasFlag([]string{"rm", "-f", ""}, 1, 2, force))
	assert.False(t, hasFlag([]string{"rm", ""}, 1, 1, force))
	// A flag typed after the cursor cannot influence the current slot.
	assert.False(t, hasFlag([]string{"rm", "", "--force"}, 1, 1, force))
}

func TestClassify(t *testing.T) {
	fs := testFlagSet()
	words := []string{"run", "--force", "--name", "web", "img"}

	kinds := classify(words, 1, fs)
	assert.Equal(t, tokenFlag, kinds[1])
	assert.Equal(t, tokenFlagValue, kinds[2])
	assert.Equal(t, tokenValue, kinds[3])
	assert.Equal(t, tokenFree, kinds[4])
}

func TestClassifyEqualsArtifact(t *testing.T) {
	fs := testFlagSet()
	words := []string{"run", "--name", "=", "web", "img"}

	kinds := classify(words, 1, fs)
	assert.Equal(t, tokenFlagValue, kinds[1])
	assert.Equal(t, tokenValue, kinds[2])
	assert.Equal(t, tokenValue, kinds[3])
	assert.Equal(t, tokenFree, kinds[4])
}
