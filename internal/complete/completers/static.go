package completers

import (
	"github.com/stevedore-sh/stevedore-complete/internal/vocab"
)

// StaticCompleter serves the fixed vocabularies as candidates.
type StaticCompleter struct {
	vocab *vocab.Vocabulary
}

// NewStaticCompleter creates a StaticCompleter over the given vocabulary.
func NewStaticCompleter(v *vocab.Vocabulary) *StaticCompleter {
	return &StaticCompleter{vocab: v}
}

// Capabilities returns kernel capability name candidates.
func (s *StaticCompleter) Capabilities() []Candidate {
	return FromStrings(s.vocab.Capabilities())
}

// Signals returns signal name candidates.
func (s *StaticCompleter) Signals() []Candidate {
	return FromStrings(s.vocab.Signals())
}

// LogDrivers returns log driver name candidates.
func (s *StaticCompleter) LogDrivers() []Candidate {
	return FromStrings(s.vocab.LogDrivers())
}

// LogOptions returns the option keys valid for a chosen log driver, or the
// union across drivers when none has been chosen yet.
func (s *StaticCompleter) LogOptions(driver string) []Candidate {
	return FromStrings(s.vocab.LogOptions(driver))
}

// SyslogFacilities returns syslog facility name candidates.
func (s *StaticCompleter) SyslogFacilities() []Candidate {
	return FromStrings(s.vocab.SyslogFacilities())
}
