package complete

import (
	"context"
	"strings"
)

// valueCompleter produces candidates for a flag's value. cur is the value
// text typed so far (with any "name=" prefix already stripped). A nil
// completer means the value is free-form and gets no suggestions.
type valueCompleter func(ctx context.Context, r *request, cur string) []Candidate

// Flag describes one flag of a subcommand: its canonical spellings, whether
// it consumes the following token as a value, and how to complete that value.
// Descriptors are immutable; they are defined once per subcommand.
type Flag struct {
	Long       string
	Short      string
	TakesValue bool
	Complete   valueCompleter
}

func (f *Flag) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, f.Long)
	}
	if f.Short != "" {
		s = append(s, f.Short)
	}
	return s
}

// matches reports whether the token is one of the flag's exact spellings.
func (f *Flag) matches(token string) bool {
	return (f.Long != "" && token == f.Long) || (f.Short != "" && token == f.Short)
}

// FlagSet is the set of flag descriptors for one subcommand (or the global
// option set). Lookup is by exact spelling; "name=value" tokens are matched
// through splitToken.
type FlagSet struct {
	flags []*Flag
}

// NewFlagSet creates a FlagSet from descriptors.
func NewFlagSet(flags ...*Flag) *FlagSet {
	return &FlagSet{flags: flags}
}

// boolFlag is a shorthand constructor for a flag without a value.
func boolFlag(long, short string) *Flag {
	return &Flag{Long: long, Short: short}
}

// valueFlag is a shorthand constructor for a value-consuming flag.
func valueFlag(long, short string, complete valueCompleter) *Flag {
	return &Flag{Long: long, Short: short, TakesValue: true, Complete: complete}
}

// Lookup finds the descriptor for an exact flag spelling.
func (fs *FlagSet) Lookup(token string) (*Flag, bool) {
	for _, f := range fs.flags {
		if f.matches(token) {
			return f, true
		}
	}
	return nil, false
}

// splitToken matches "name=value" tokens against the set. It returns the
// descriptor, the value portion, and whether the token had the joined form.
func (fs *FlagSet) splitToken(token string) (*Flag, string, bool) {
	eq := strings.Index(token, "=")
	if eq <= 0 || !strings.HasPrefix(token, "-") {
		return nil, "", false
	}
	f, ok := fs.Lookup(token[:eq])
	if !ok {
		return nil, "", false
	}
	return f, token[eq+1:], true
}

// Spellings returns every flag spelling in the set, for offering flag-name
// candidates.
func (fs *FlagSet) Spellings() []string {
	var all []string
	for _, f := range fs.flags {
		all = append(all, f.spellings()...)
	}
	return all
}
