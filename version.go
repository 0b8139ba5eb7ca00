// Package ogal compiles pin, table and boolean function descriptions into
// GAL fuse maps.
package ogal

import (
	_ "embed"
	"strings"
)

// Name is the tool name written into generated files.
const Name = "ogal"

//go:embed VERSION
var versionRaw string

func Version() string {
	return strings.TrimSpace(versionRaw)
}

// Banner is Name followed by the version, as in "ogal 0.1.0".
func Banner() string {
	return Name + " " + Version()
}
