package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	assert.Contains(t, v.Capabilities(), "NET_ADMIN")
	assert.Contains(t, v.Signals(), "SIGKILL")
	assert.Contains(t, v.LogDrivers(), "syslog")
	assert.Contains(t, v.SyslogFacilities(), "daemon")
}

func TestLogOptionsForKnownDriver(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"syslog-address", "syslog-facility", "syslog-tag"},
		v.LogOptions("syslog"))
	assert.Empty(t, v.LogOptions("none"))
}

func TestLogOptionsUnknownDriverReturnsUnion(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	union := v.LogOptions("")
	assert.Contains(t, union, "syslog-address")
	assert.Contains(t, union, "max-size")
	assert.Contains(t, union, "gelf-address")
}

func TestLoadUserOverlay(t *testing.T) {
	overlay := filepath.Join(t.TempDir(), "completions.yaml")
	content := []byte("log_drivers:\n  splunk:\n    - splunk-token\n    - splunk-url\nsignals:\n  - SIGRTMIN\n")
	require.NoError(t, os.WriteFile(overlay, content, 0644))

	v, err := Load(overlay)
	require.NoError(t, err)

	assert.Contains(t, v.LogDrivers(), "splunk")
	assert.ElementsMatch(t, []string{"splunk-token", "splunk-url"}, v.LogOptions("splunk"))
	assert.Contains(t, v.Signals(), "SIGRTMIN")
	// Embedded defaults survive the overlay.
	assert.Contains(t, v.Signals(), "SIGTERM")
}

func TestLoadIgnoresMissingOverlay(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, v.Capabilities())
}

func TestLoadIgnoresMalformedOverlay(t *testing.T) {
	overlay := filepath.Join(t.TempDir(), "completions.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte(":\t not yaml ["), 0644))

	v, err := Load(overlay)
	require.NoError(t, err)
	assert.NotEmpty(t, v.Capabilities())
}

func TestVocabularyReturnsCopies(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	caps := v.Capabilities()
	caps[0] = "MUTATED"
	assert.NotContains(t, v.Capabilities(), "MUTATED")
}
