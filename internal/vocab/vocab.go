// Package vocab holds the static completion vocabularies: fixed enumerations
// such as capability names, signal names, log drivers and their option keys.
// The defaults are embedded YAML files; a user file can overlay additional
// entries on top of them.
package vocab

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// file is the YAML shape shared by the embedded files and the user overlay.
// Each file may populate any subset of the sections.
type file struct {
	Capabilities     []string            `yaml:"capabilities"`
	Signals          []string            `yaml:"signals"`
	LogDrivers       map[string][]string `yaml:"log_drivers"`
	SyslogFacilities []string            `yaml:"syslog_facilities"`
}

// Vocabulary is the merged, read-only set of static candidate lists.
type Vocabulary struct {
	capabilities     []string
	signals          []string
	logDrivers       map[string][]string
	syslogFacilities []string
}

// New returns an empty Vocabulary. Mostly useful as a fallback when loading
// the embedded data fails.
func New() *Vocabulary {
	return &Vocabulary{
		logDrivers: make(map[string][]string),
	}
}

// Load builds a Vocabulary from the embedded defaults, then overlays the user
// file at overlayPath if it exists. A missing or malformed overlay is ignored;
// static completion always works with the embedded data.
func Load(overlayPath string) (*Vocabulary, error) {
	v := New()

	err := fs.WalkDir(Data, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}

		data, err := fs.ReadFile(Data, path)
		if err != nil {
			return err
		}

		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return err
		}

		v.merge(f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if overlayPath != "" {
		if data, err := os.ReadFile(overlayPath); err == nil {
			var f file
			if err := yaml.Unmarshal(data, &f); err == nil {
				v.merge(f)
			}
		}
	}

	return v, nil
}

func (v *Vocabulary) merge(f file) {
	v.capabilities = lo.Uniq(append(v.capabilities, f.Capabilities...))
	v.signals = lo.Uniq(append(v.signals, f.Signals...))
	v.syslogFacilities = lo.Uniq(append(v.syslogFacilities, f.SyslogFacilities...))
	for driver, opts := range f.LogDrivers {
		v.logDrivers[driver] = lo.Uniq(append(v.logDrivers[driver], opts...))
	}
}

// Capabilities returns the kernel capability names.
func (v *Vocabulary) Capabilities() []string {
	return append([]string(nil), v.capabilities...)
}

// Signals returns the signal names.
func (v *Vocabulary) Signals() []string {
	return append([]string(nil), v.signals...)
}

// LogDrivers returns the known log driver names, sorted.
func (v *Vocabulary) LogDrivers() []string {
	drivers := lo.Keys(v.logDrivers)
	sort.Strings(drivers)
	return drivers
}

// LogOptions returns the option keys valid for the given driver. An empty or
// unknown driver returns the union of every driver's keys, since the user may
// not have chosen a driver yet.
func (v *Vocabulary) LogOptions(driver string) []string {
	if opts, ok := v.logDrivers[driver]; ok {
		return append([]string(nil), opts...)
	}

	var all []string
	for _, opts := range v.logDrivers {
		all = append(all, opts...)
	}
	all = lo.Uniq(all)
	sort.Strings(all)
	return all
}

// SyslogFacilities returns the syslog facility names.
func (v *Vocabulary) SyslogFacilities() []string {
	return append([]string(nil), v.syslogFacilities...)
}
