/*
Package ttf provides access to TrueType-flavored OpenType fonts: the sfnt
table directory, the tables needed for rendering glyph outlines (head, maxp,
hhea, hmtx, loca, glyf, cmap, name), and a decoder which turns a glyph's
binary data into drawable path commands.

The intended audience for this package are:

▪︎ text shapers (see the sibling package ttfshape)

▪︎ glyph rasterizers and code generators, which consume the path-command
sequences produced by the outline decoder

This package is *not* intended for font manipulation applications, and it
does not interpret hinting instructions, CFF outlines, or the advanced
layout tables (GSUB/GPOS).

A Font is immutable after Parse returns and may be shared freely between
goroutines; glyph decoding and shaping are pure computations over the
font's binary data.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
)

// Code comments often cite passages from the OpenType specification
// version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// tracer writes to trace with key 'iris.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("iris.fonts")
}
