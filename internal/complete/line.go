package complete

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Line is the command line state for one completion request: the token list,
// the index of the token being completed, and (once the dispatcher has found
// it) the index of the subcommand token. It is rebuilt fresh on every request.
type Line struct {
	Words    []string
	Cword    int
	CmdIndex int
}

// NewLine builds a Line from a pre-split word list and cursor index. A cursor
// one past the last word means a new, empty token is being completed.
func NewLine(words []string, cword int) (*Line, error) {
	if cword < 0 {
		return nil, fmt.Errorf("cursor index %d is negative", cword)
	}
	if cword > len(words) {
		return nil, fmt.Errorf("cursor index %d is beyond the %d supplied words", cword, len(words))
	}
	if cword == len(words) {
		words = append(append([]string(nil), words...), "")
	}
	return &Line{Words: words, Cword: cword}, nil
}

// ParseLine builds a Line from a raw line and byte offset, for hosts that
// hand over the unsplit input. Tokenization follows shell quoting rules.
func ParseLine(line string, point int) (*Line, error) {
	if point < 0 || point > len(line) {
		point = len(line)
	}
	line = line[:point]

	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("tokenizing line: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty line")
	}

	// A trailing separator means the cursor sits on a new, empty token.
	if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		words = append(words, "")
	}
	return &Line{Words: words, Cword: len(words) - 1}, nil
}

// Current returns the token being completed.
func (l *Line) Current() string {
	return l.Words[l.Cword]
}

// Previous returns the token before the one being completed, or "" when the
// cursor is on the first token.
func (l *Line) Previous() string {
	if l.Cword == 0 {
		return ""
	}
	return l.Words[l.Cword-1]
}
