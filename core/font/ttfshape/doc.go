/*
Package ttfshape positions glyphs for runs of text. It is a deliberately
small shaper: one code-point maps to one glyph, glyphs advance along a
horizontal pen, no ligatures, no kerning, no bidi. That is adequate for
glyph inspection tools, code generators and tests; proper paragraph
typesetting needs a full shaper like HarfBuzz.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ttfshape

import (
	"github.com/iris-gfx/iris/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'iris.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("iris.fonts")
}

// errShaper produces user level errors for text shaping.
func errShaper(x string) error {
	return core.Error(core.EINVALID, "text shaping: %s", x)
}
