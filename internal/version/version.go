package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the akuru CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders v with major, minor and patch in their own colours.
// Anything after the patch number (e.g. "-dev") is left plain.
func Colored(v string, enabled bool) string {
	if !enabled {
		return v
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	patch, suffix := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, suffix = patch[:i], patch[i:]
	}
	parts[2] = patch

	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		c := *partColors[i]
		c.EnableColor()
		b.WriteString(c.Sprint(p))
	}
	b.WriteString(suffix)
	return b.String()
}
