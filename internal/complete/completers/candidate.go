package completers

// Candidate is a single completion suggestion. NoSpace marks candidates that
// are prefixes of a longer token (for example "container:" or "label="), so
// the host shell should not append a trailing space after inserting them.
type Candidate struct {
	Value       string
	Description string
	NoSpace     bool
}

// FromStrings wraps plain strings as candidates.
func FromStrings(values []string) []Candidate {
	candidates := make([]Candidate, 0, len(values))
	for _, v := range values {
		candidates = append(candidates, Candidate{Value: v})
	}
	return candidates
}
