package ttfshape

import (
	"github.com/iris-gfx/iris/core/font/ttf"
	"golang.org/x/image/font/sfnt"
)

// ShapedGlyph is one positioned glyph of a shaped text run. PenX/PenY is
// the pen position the glyph is drawn at, in font units relative to the
// start of the run.
type ShapedGlyph struct {
	CodePoint  rune
	Glyph      *ttf.Glyph
	PenX, PenY sfnt.Units
}

// Buffer is a sequence of positioned glyphs, in logical order.
type Buffer []ShapedGlyph

// Glyphs returns the glyph indices of the glyphs in a buffer.
// Allocates a slice of glyph-indices.
func (b Buffer) Glyphs() []ttf.GlyphIndex {
	glyphs := make([]ttf.GlyphIndex, len(b))
	for i, g := range b {
		glyphs[i] = g.Glyph.Index
	}
	return glyphs
}

// Width returns the total advance of the run, i.e. the pen position after
// the last glyph.
func (b Buffer) Width() sfnt.Units {
	if len(b) == 0 {
		return 0
	}
	last := b[len(b)-1]
	return last.PenX + last.Glyph.Advance
}
