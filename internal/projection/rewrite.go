// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package projection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/scad2d/pkg/types"
)

const (
	// echoPrefix wraps every line the lasercut library echoes in generate mode.
	echoPrefix = `ECHO: "[LC] `
)

// warningRE matches from WARNING to the end of its line. The newline stays,
// so a warning leaves an empty line behind.
var warningRE = regexp.MustCompile(`WARNING.*`)

// Rewrite turns the toolchain's captured standard error into OpenSCAD source
// statements. The order of the steps matters: quotes are stripped only where
// they close a line, after the echo prefix is gone.
func Rewrite(stderr string) string {
	s := strings.ReplaceAll(stderr, "\r\n", "\n")
	s = strings.ReplaceAll(s, echoPrefix, "")
	s = strings.ReplaceAll(s, "\"\n", "\n")
	s = warningRE.ReplaceAllString(s, "")
	return s + ";"
}

// Header returns the preamble of the generated 2D source: a note, the library
// import, the facet setting and the projection directive that flattens the
// statements that follow.
func Header(cfg types.Config) string {
	var b strings.Builder
	b.WriteString("// May need to adjust location of <lasercut.scad>\n")
	fmt.Fprintf(&b, "use <%s>;\n", cfg.Library)
	fmt.Fprintf(&b, "$fn=%d;\n", cfg.Facets)
	b.WriteString("projection(cut = false)\n\n")
	return b.String()
}

// Document assembles the full generated source from captured stderr.
func Document(cfg types.Config, stderr string) string {
	return Header(cfg) + Rewrite(stderr)
}
