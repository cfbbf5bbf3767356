package ttf

import "golang.org/x/image/font/sfnt"

// Glyph is a fully resolved glyph: its outline flattened to simple
// contours, together with its horizontal metrics and bounding box, all in
// font units. Glyphs are immutable once returned.
type Glyph struct {
	Index                  GlyphIndex
	Advance                sfnt.Units
	LeftSideBearing        sfnt.Units
	XMin, YMin, XMax, YMax int16
	endPoints              []int
	points                 []Point
}

// ContourCount returns the number of closed contours of the glyph's
// outline. Glyphs without an outline (e.g. the space character) have zero
// contours.
func (g *Glyph) ContourCount() int {
	return len(g.endPoints)
}

// Contour returns the control points of contour i. Points are shared with
// the glyph and must not be modified.
func (g *Glyph) Contour(i int) []Point {
	start := 0
	if i > 0 {
		start = g.endPoints[i-1] + 1
	}
	return g.points[start : g.endPoints[i]+1]
}

// GlyphDescription summarizes a glyph's extent: bounding box and
// horizontal metrics, in font units.
type GlyphDescription struct {
	XMin, YMin, XMax, YMax int16
	Advance                sfnt.Units
	LeftSideBearing        sfnt.Units
}

// Width returns the horizontal extent of the glyph's bounding box.
func (d GlyphDescription) Width() sfnt.Units {
	return sfnt.Units(d.XMax) - sfnt.Units(d.XMin)
}

// Height returns the vertical extent of the glyph's bounding box.
func (d GlyphDescription) Height() sfnt.Units {
	return sfnt.Units(d.YMax) - sfnt.Units(d.YMin)
}

// Description returns the glyph's bounding box and metrics.
func (g *Glyph) Description() GlyphDescription {
	return GlyphDescription{
		XMin: g.XMin, YMin: g.YMin, XMax: g.XMax, YMax: g.YMax,
		Advance:         g.Advance,
		LeftSideBearing: g.LeftSideBearing,
	}
}

// Width returns the horizontal extent of the glyph's bounding box.
func (g *Glyph) Width() sfnt.Units {
	return sfnt.Units(g.XMax) - sfnt.Units(g.XMin)
}

// Height returns the vertical extent of the glyph's bounding box.
func (g *Glyph) Height() sfnt.Units {
	return sfnt.Units(g.YMax) - sfnt.Units(g.YMin)
}

// Glyph resolves a glyph by index: compound references are flattened, and
// the glyph's metrics are attached. The glyph index has to be in
// 0 … GlyphCount()-1, otherwise an InvalidGlyphIndex error is returned.
func (otf *Font) Glyph(gid GlyphIndex) (*Glyph, error) {
	data, err := otf.GlyphData(gid)
	if err != nil {
		return nil, err
	}
	cs, err := otf.flattenedContours(gid, 0)
	if err != nil {
		return nil, err
	}
	advance, lsb := otf.hmtx.metrics(gid)
	return &Glyph{
		Index:           gid,
		Advance:         advance,
		LeftSideBearing: lsb,
		XMin:            data.XMin,
		YMin:            data.YMin,
		XMax:            data.XMax,
		YMax:            data.YMax,
		endPoints:       cs.endPoints,
		points:          cs.points,
	}, nil
}

// FallbackGlyph returns the font's .notdef glyph, used as a stand-in for
// glyphs which cannot be decoded. If even glyph 0 is broken, a metrics-only
// glyph without an outline is returned.
func (otf *Font) FallbackGlyph() *Glyph {
	g, err := otf.Glyph(0)
	if err != nil {
		tracer().Errorf("fallback glyph of font unusable: %v", err)
		advance, lsb := otf.hmtx.metrics(0)
		return &Glyph{Advance: advance, LeftSideBearing: lsb}
	}
	return g
}
