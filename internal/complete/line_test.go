package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineAppendsEmptyCurrentWord(t *testing.T) {
	line, err := NewLine([]string{"stevedore", "rm"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"stevedore", "rm", ""}, line.Words)
	assert.Equal(t, "", line.Current())
	assert.Equal(t, "rm", line.Previous())
}

func TestNewLineRejectsBadCursor(t *testing.T) {
	_, err := NewLine([]string{"stevedore"}, -1)
	assert.Error(t, err)

	_, err = NewLine([]string{"stevedore"}, 3)
	assert.Error(t, err)
}

func TestParseLineTrailingSpaceStartsNewWord(t *testing.T) {
	line, err := ParseLine("stevedore rm ", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"stevedore", "rm", ""}, line.Words)
	assert.Equal(t, 2, line.Cword)
}

func TestParseLineMidWord(t *testing.T) {
	line, err := ParseLine("stevedore pau", -1)
	require.NoError(t, err)
	assert.Equal(t, "pau", line.Current())
}

func TestParseLineTruncatesAtPoint(t *testing.T) {
	line, err := ParseLine("stevedore rm --force c1", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"stevedore", "rm"}, line.Words)
}

func TestParseLineRespectsQuoting(t *testing.T) {
	line, err := ParseLine(`stevedore run --name "my app" `, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"stevedore", "run", "--name", "my app", ""}, line.Words)
}

func TestParseLineEmpty(t *testing.T) {
	_, err := ParseLine("", -1)
	assert.Error(t, err)
}

func TestPreviousAtLineStart(t *testing.T) {
	line, err := NewLine([]string{"stevedore"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "", line.Previous())
}
