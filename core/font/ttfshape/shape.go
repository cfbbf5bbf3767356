package ttfshape

import (
	"github.com/iris-gfx/iris/core/font/ttf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"
)

// Shaper shapes text runs with a single font. A Shaper is stateless apart
// from the font and may be used concurrently.
type Shaper struct {
	font *ttf.Font
}

// NewShaper creates a shaper for a font.
func NewShaper(otf *ttf.Font) (*Shaper, error) {
	if otf == nil {
		return nil, errShaper("no font given")
	}
	return &Shaper{font: otf}, nil
}

// Font returns the font the shaper shapes with.
func (sh *Shaper) Font() *ttf.Font {
	return sh.font
}

// Shape positions the glyphs for a run of text. The text is normalized to
// NFC first, then every code-point maps to one glyph, placed at a pen
// position which advances by each glyph's advance width. Code-points the
// font has no glyph for render as the font's .notdef glyph, as do glyphs
// with undecodable outlines; Shape reports such substitutions in its trace
// but does not fail on them.
//
// The returned buffer is in logical order and carries positions in font
// units; scaling to device units is up to the caller.
func (sh *Shaper) Shape(text string) Buffer {
	text = norm.NFC.String(text)
	buf := make(Buffer, 0, len(text))
	var pen sfnt.Units
	for _, r := range text {
		gid := sh.font.GlyphIndex(r)
		glyph, err := sh.font.Glyph(gid)
		if err != nil {
			tracer().Infof("glyph %d for %#U not usable, substituting: %v", gid, r, err)
			glyph = sh.font.FallbackGlyph()
		}
		buf = append(buf, ShapedGlyph{
			CodePoint: r,
			Glyph:     glyph,
			PenX:      pen,
		})
		pen += glyph.Advance
	}
	return buf
}
