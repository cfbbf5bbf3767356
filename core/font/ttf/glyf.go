package ttf

import "math"

// Decoding of glyph outlines from the glyf table.
//
// A glyf entry is either a simple glyph, carrying contours of quadratic
// B-spline control points in a run-length encoded format, or a compound
// glyph, referencing other glyphs with an affine transform per component.

// Flags of the simple glyph coordinate encoding.
const (
	flagOnCurve     = 0x01
	flagXShort      = 0x02
	flagYShort      = 0x04
	flagRepeat      = 0x08
	flagXSameOrPlus = 0x10 // same x, or: short x is positive
	flagYSameOrPlus = 0x20 // same y, or: short y is positive
)

// Flags of compound glyph components.
const (
	cflagArg1And2AreWords = 0x0001
	cflagArgsAreXYValues  = 0x0002
	cflagWeHaveAScale     = 0x0008
	cflagMoreComponents   = 0x0020
	cflagXAndYScale       = 0x0040
	cflagTwoByTwo         = 0x0080
)

// maxCompoundDepth limits the nesting of compound glyphs. The deepest
// nesting observed in real fonts is 2 or 3; a chain longer than this is a
// broken or hostile font.
const maxCompoundDepth = 8

// Point is one control point of a glyph outline, in font units. Off-curve
// points are the control points of quadratic curve segments.
type Point struct {
	X, Y    int32
	OnCurve bool
}

// GlyphData is the decoded content of one glyf table entry. Exactly one of
// Simple and Compound is set, except for glyphs without an outline (e.g.
// the space character), where both are nil.
type GlyphData struct {
	Index                  GlyphIndex
	XMin, YMin, XMax, YMax int16 // bounding box as declared in the glyf entry
	Simple                 *SimpleGlyphData
	Compound               *CompoundGlyphData
}

// Empty is true for glyphs without an outline.
func (g *GlyphData) Empty() bool {
	return g.Simple == nil && g.Compound == nil
}

// IsSimple is true for glyphs with directly encoded contours, i.e. neither
// compound nor empty.
func (g *GlyphData) IsSimple() bool {
	return g.Simple != nil
}

// SimpleGlyphData holds the contours of a non-compound glyph. Points is the
// concatenation of all contours; EndPoints[i] is the index of the last
// point of contour i.
type SimpleGlyphData struct {
	EndPoints []int
	Points    []Point
}

// ContourCount returns the number of closed contours of the glyph.
func (s *SimpleGlyphData) ContourCount() int {
	return len(s.EndPoints)
}

// Contour returns the points of contour i.
func (s *SimpleGlyphData) Contour(i int) []Point {
	start := 0
	if i > 0 {
		start = s.EndPoints[i-1] + 1
	}
	return s.Points[start : s.EndPoints[i]+1]
}

// CompoundGlyphData lists the components a compound glyph is assembled
// from.
type CompoundGlyphData struct {
	Components []Component
}

// Component is one constituent of a compound glyph: a reference to another
// glyph together with an affine transform
//
//	x' = XScale·x + Scale10·y + DX
//	y' = Scale01·x + YScale·y + DY
//
// Scale factors are stored as F2Dot14 in the font and decoded to float64.
type Component struct {
	Glyph            GlyphIndex
	DX, DY           int32
	XScale, YScale   float64
	Scale01, Scale10 float64
}

// --- Location and decoding ---------------------------------------------------

// glyphRange returns the byte segment of the glyf table holding the glyph's
// data. Glyphs without an outline have an empty range.
func (otf *Font) glyphRange(gid GlyphIndex) (binarySegm, error) {
	if int(gid) >= otf.maxp.numGlyphs {
		return nil, errInvalidGlyphIndex(gid)
	}
	start, end := otf.loca.offsets[gid], otf.loca.offsets[gid+1]
	return otf.glyf[start:end], nil
}

// GlyphData decodes the outline data of a single glyph, without resolving
// compound references. The glyph index has to be in 0 … GlyphCount()-1.
//
// Errors are local to the glyph: a MalformedGlyph or
// UnsupportedCompoundEncoding return does not impair the Font or any other
// glyph.
func (otf *Font) GlyphData(gid GlyphIndex) (*GlyphData, error) {
	b, err := otf.glyphRange(gid)
	if err != nil {
		return nil, err
	}
	g := &GlyphData{Index: gid}
	if len(b) == 0 { // no outline, e.g. space
		return g, nil
	}
	if len(b) < 10 {
		return nil, errMalformedGlyph(gid, "glyph header cut short")
	}
	numContours := i16(b)
	g.XMin, g.YMin = i16(b[2:]), i16(b[4:])
	g.XMax, g.YMax = i16(b[6:]), i16(b[8:])
	body := cursor{b: b, pos: 10}
	switch {
	case numContours >= 0:
		g.Simple, err = decodeSimple(gid, &body, int(numContours))
	case numContours == -1:
		g.Compound, err = decodeCompound(gid, &body)
	default:
		err = errMalformedGlyph(gid, "negative contour count other than -1")
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// decodeSimple reads a simple glyph description: the contour end points,
// the (skipped) hinting instructions, the run-length encoded flags, and the
// delta-encoded coordinate arrays.
func decodeSimple(gid GlyphIndex, c *cursor, numContours int) (*SimpleGlyphData, error) {
	s := &SimpleGlyphData{EndPoints: make([]int, numContours)}
	prevEnd := -1
	for i := 0; i < numContours; i++ {
		e, err := c.u16()
		if err != nil {
			return nil, errMalformedGlyph(gid, "contour end points cut short")
		}
		if int(e) <= prevEnd {
			return nil, errMalformedGlyph(gid, "contour end points not strictly increasing")
		}
		prevEnd = int(e)
		s.EndPoints[i] = int(e)
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = s.EndPoints[numContours-1] + 1
	}
	instrLen, err := c.u16()
	if err != nil {
		return nil, errMalformedGlyph(gid, "instruction length cut short")
	}
	if err := c.skip(int(instrLen)); err != nil { // hinting is not interpreted
		return nil, errMalformedGlyph(gid, "instructions cut short")
	}
	flags := make([]uint8, numPoints)
	for i := 0; i < numPoints; {
		f, err := c.u8()
		if err != nil {
			return nil, errMalformedGlyph(gid, "flags cut short")
		}
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			n, err := c.u8()
			if err != nil {
				return nil, errMalformedGlyph(gid, "flag repeat count cut short")
			}
			if i+int(n) > numPoints {
				return nil, errMalformedGlyph(gid, "flag repeat overruns point count")
			}
			for ; n > 0; n-- {
				flags[i] = f
				i++
			}
		}
	}
	s.Points = make([]Point, numPoints)
	var x int32
	for i, f := range flags {
		dx, err := coordDelta(c, f&flagXShort != 0, f&flagXSameOrPlus != 0)
		if err != nil {
			return nil, errMalformedGlyph(gid, "x coordinates cut short")
		}
		x += dx
		s.Points[i].X = x
		s.Points[i].OnCurve = f&flagOnCurve != 0
	}
	var y int32
	for i, f := range flags {
		dy, err := coordDelta(c, f&flagYShort != 0, f&flagYSameOrPlus != 0)
		if err != nil {
			return nil, errMalformedGlyph(gid, "y coordinates cut short")
		}
		y += dy
		s.Points[i].Y = y
	}
	return s, nil
}

// coordDelta reads one coordinate delta. A short delta is one unsigned
// byte, with the same-or-positive flag carrying the sign; otherwise the
// flag distinguishes "same as previous" (delta 0) from a signed 16-bit
// delta.
func coordDelta(c *cursor, short, sameOrPlus bool) (int32, error) {
	if short {
		d, err := c.u8()
		if err != nil {
			return 0, err
		}
		if sameOrPlus {
			return int32(d), nil
		}
		return -int32(d), nil
	}
	if sameOrPlus {
		return 0, nil
	}
	d, err := c.i16()
	return int32(d), err
}

// decodeCompound reads the component list of a compound glyph. Components
// positioning themselves by matching point indices instead of x/y offsets
// are not interpreted; they yield an UnsupportedCompoundEncoding error.
func decodeCompound(gid GlyphIndex, c *cursor) (*CompoundGlyphData, error) {
	cg := &CompoundGlyphData{}
	for {
		flags, err := c.u16()
		if err != nil {
			return nil, errMalformedGlyph(gid, "component flags cut short")
		}
		glyphIndex, err := c.u16()
		if err != nil {
			return nil, errMalformedGlyph(gid, "component glyph index cut short")
		}
		if flags&cflagArgsAreXYValues == 0 {
			return nil, errUnsupportedCompound(gid)
		}
		comp := Component{
			Glyph:  GlyphIndex(glyphIndex),
			XScale: 1, YScale: 1,
		}
		if flags&cflagArg1And2AreWords != 0 {
			dx, err1 := c.i16()
			dy, err2 := c.i16()
			if err1 != nil || err2 != nil {
				return nil, errMalformedGlyph(gid, "component offsets cut short")
			}
			comp.DX, comp.DY = int32(dx), int32(dy)
		} else {
			dx, err1 := c.i8()
			dy, err2 := c.i8()
			if err1 != nil || err2 != nil {
				return nil, errMalformedGlyph(gid, "component offsets cut short")
			}
			comp.DX, comp.DY = int32(dx), int32(dy)
		}
		switch {
		case flags&cflagWeHaveAScale != 0:
			s, err := f2dot14(c)
			if err != nil {
				return nil, errMalformedGlyph(gid, "component scale cut short")
			}
			comp.XScale, comp.YScale = s, s
		case flags&cflagXAndYScale != 0:
			sx, err1 := f2dot14(c)
			sy, err2 := f2dot14(c)
			if err1 != nil || err2 != nil {
				return nil, errMalformedGlyph(gid, "component scale cut short")
			}
			comp.XScale, comp.YScale = sx, sy
		case flags&cflagTwoByTwo != 0:
			var errs [4]error
			comp.XScale, errs[0] = f2dot14(c)
			comp.Scale01, errs[1] = f2dot14(c)
			comp.Scale10, errs[2] = f2dot14(c)
			comp.YScale, errs[3] = f2dot14(c)
			for _, err := range errs {
				if err != nil {
					return nil, errMalformedGlyph(gid, "component matrix cut short")
				}
			}
		}
		cg.Components = append(cg.Components, comp)
		if flags&cflagMoreComponents == 0 {
			break
		}
	}
	return cg, nil
}

// f2dot14 reads a signed fixed-point number with 14 fractional bits.
func f2dot14(c *cursor) (float64, error) {
	v, err := c.i16()
	return float64(v) / 16384.0, err
}

// --- Flattening of compound glyphs -------------------------------------------

// contourSet are the flattened contours of a glyph: component references
// resolved, transforms applied, everything in the coordinate space of the
// top-level glyph.
type contourSet struct {
	endPoints []int
	points    []Point
}

// flattenedContours resolves a glyph to its contours. Simple glyphs pass
// through unchanged; compound glyphs are resolved recursively up to
// maxCompoundDepth levels, with each component's points transformed and
// appended.
func (otf *Font) flattenedContours(gid GlyphIndex, depth int) (*contourSet, error) {
	if depth > maxCompoundDepth {
		return nil, errMalformedGlyph(gid, "compound glyphs nested too deeply")
	}
	g, err := otf.GlyphData(gid)
	if err != nil {
		return nil, err
	}
	cs := &contourSet{}
	if g.Empty() {
		return cs, nil
	}
	if g.Simple != nil {
		cs.endPoints = append(cs.endPoints, g.Simple.EndPoints...)
		cs.points = append(cs.points, g.Simple.Points...)
		return cs, nil
	}
	for _, comp := range g.Compound.Components {
		if comp.Glyph == gid {
			return nil, errMalformedGlyph(gid, "compound glyph references itself")
		}
		sub, err := otf.flattenedContours(comp.Glyph, depth+1)
		if err != nil {
			return nil, err
		}
		base := len(cs.points)
		for _, e := range sub.endPoints {
			cs.endPoints = append(cs.endPoints, base+e)
		}
		for _, p := range sub.points {
			cs.points = append(cs.points, comp.transform(p))
		}
	}
	return cs, nil
}

// transform applies the component's affine transform to a point, rounding
// to the nearest font unit.
func (comp Component) transform(p Point) Point {
	x := comp.XScale*float64(p.X) + comp.Scale10*float64(p.Y) + float64(comp.DX)
	y := comp.Scale01*float64(p.X) + comp.YScale*float64(p.Y) + float64(comp.DY)
	return Point{
		X:       int32(math.Round(x)),
		Y:       int32(math.Round(y)),
		OnCurve: p.OnCurve,
	}
}
