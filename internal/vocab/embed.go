package vocab

import (
	"embed"
)

// Data contains the embedded YAML vocabulary files. These are the fixed
// enumerations (capabilities, signals, log drivers, syslog facilities)
// offered as static completion candidates.
//
//go:embed data/*.yaml
var Data embed.FS
