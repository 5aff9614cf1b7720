package complete

import (
	"strings"
)

// tokenKind classifies one token of the command line.
type tokenKind int

const (
	// tokenFree is a positional argument.
	tokenFree tokenKind = iota
	// tokenFlag is a boolean or unrecognized flag that stands alone.
	tokenFlag
	// tokenFlagValue is a flag that binds a value, either joined with "=" or
	// consuming following tokens.
	tokenFlagValue
	// tokenValue is a token consumed as the value of a preceding flag,
	// including the "=" artifact a naive tokenizer emits between a flag and
	// its joined value.
	tokenValue
)

// step consumes the construct starting at index i and returns the index of
// the next unconsumed token. free reports that words[i] is a positional
// argument, in which case the index does not advance.
//
// The same flag can reach us in four tokenizations and all must behave
// identically:
//
//	--flag value        two tokens
//	--flag=value        one token
//	--flag = value      three tokens ("=" emitted by a naive tokenizer)
//	--flag= value       two tokens
//
// When a token is ambiguous the walk prefers treating it as value-consuming,
// which errs toward fewer false positional completions.
func step(words []string, i int, fs *FlagSet) (next int, free bool) {
	w := words[i]

	if f, value, ok := fs.splitToken(w); ok {
		if f.TakesValue && value == "" {
			// "--flag=": the value is still in the next token.
			return i + 2, false
		}
		return i + 1, false
	}

	if f, ok := fs.Lookup(w); ok && f.TakesValue {
		if i+1 < len(words) && words[i+1] == "=" {
			return i + 3, false
		}
		return i + 2, false
	}

	if strings.HasPrefix(w, "-") && w != "-" {
		return i + 1, false
	}

	return i, true
}

// classify assigns a kind to every token in [start, len(words)).
func classify(words []string, start int, fs *FlagSet) []tokenKind {
	kinds := make([]tokenKind, len(words))
	i := start
	for i < len(words) {
		next, free := step(words, i, fs)
		if free {
			kinds[i] = tokenFree
			i++
			continue
		}
		if next == i+1 {
			if _, _, joined := fs.splitToken(words[i]); joined {
				kinds[i] = tokenFlagValue
			} else {
				kinds[i] = tokenFlag
			}
		} else {
			kinds[i] = tokenFlagValue
		}
		for j := i + 1; j < next && j < len(words); j++ {
			kinds[j] = tokenValue
		}
		i = next
	}
	return kinds
}

// firstFreeArg walks forward from start and returns the index of the first
// positional argument, considering tokens up to and including cword. When the
// cursor sits inside a flag or its value the returned index is beyond cword,
// signaling that no free argument exists yet; callers must only emit
// positional candidates when the result equals cword exactly.
//
// Pure function of its inputs.
func firstFreeArg(words []string, start, cword int, fs *FlagSet) int {
	i := start
	for i <= cword && i < len(words) {
		next, free := step(words, i, fs)
		if free {
			return i
		}
		i = next
	}
	return i
}

// freeArgSlot computes which positional slot the cursor occupies. It returns
// the zero-based slot index and whether the cursor is on a positional
// argument at all.
func freeArgSlot(words []string, start, cword int, fs *FlagSet) (int, bool) {
	slot := 0
	i := start
	for {
		i = firstFreeArg(words, i, cword, fs)
		if i == cword {
			return slot, true
		}
		if i > cword {
			return 0, false
		}
		slot++
		i++
	}
}

// flagValue scans tokens strictly between start and cword for the first
// occurrence of the flag and returns its bound value. Tokens at or after the
// cursor never influence the result.
func flagValue(words []string, start, cword int, f *Flag) (string, bool) {
	limit := cword
	if limit > len(words) {
		limit = len(words)
	}
	for i := start; i < limit; i++ {
		w := words[i]

		if eq := strings.Index(w, "="); eq > 0 && strings.HasPrefix(w, "-") {
			if f.matches(w[:eq]) {
				if v := w[eq+1:]; v != "" {
					return v, true
				}
				if i+1 < limit {
					return words[i+1], true
				}
				return "", false
			}
			continue
		}

		if f.matches(w) {
			j := i + 1
			if j < limit && words[j] == "=" {
				j++
			}
			if j < limit {
				return words[j], true
			}
			return "", false
		}
	}
	return "", false
}

// hasFlag reports whether any of the flag's spellings appears as a complete
// token strictly before the cursor.
func hasFlag(words []string, start, cword int, f *Flag) bool {
	limit := cword
	if limit > len(words) {
		limit = len(words)
	}
	for i := start; i < limit; i++ {
		w := words[i]
		if f.matches(w) {
			return true
		}
		if eq := strings.Index(w, "="); eq > 0 && f.matches(w[:eq]) {
			return true
		}
	}
	return false
}
