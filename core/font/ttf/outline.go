package ttf

// Reconstruction of drawable paths from a glyph's quadratic B-spline
// control points.
//
// TrueType contours are cyclic sequences of on- and off-curve points.
// Consecutive on-curve points connect with a line; an off-curve point
// between two on-curve points is the control point of a quadratic Bézier
// segment; between two consecutive off-curve points an on-curve point is
// implied at their midpoint.

// PathOp is the operation of one path command.
type PathOp int

const (
	// MoveTo starts a new contour at (X, Y).
	MoveTo PathOp = iota
	// LineTo draws a straight segment to (X, Y).
	LineTo
	// QuadTo draws a quadratic Bézier segment to (X, Y), with control
	// point (CX, CY).
	QuadTo
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	}
	return "unknown path op"
}

// PathCommand is one step of a glyph outline path. Coordinates are font
// units, held as float64: implied on-curve points sit at midpoints between
// control points and may fall between integer coordinates.
type PathCommand struct {
	Op     PathOp
	X, Y   float64
	CX, CY float64 // control point, for QuadTo only
}

// Midpoint returns the point halfway between two control points.
func Midpoint(p, q Point) (float64, float64) {
	return (float64(p.X) + float64(q.X)) / 2, (float64(p.Y) + float64(q.Y)) / 2
}

// OutlinePath converts the glyph's contours to a sequence of path
// commands. Every contour contributes one MoveTo followed by LineTo and
// QuadTo commands which arrive back at the contour's starting point;
// contours are closed implicitly. Glyphs without an outline yield an empty
// path.
func (g *Glyph) OutlinePath() []PathCommand {
	var path []PathCommand
	for i := 0; i < g.ContourCount(); i++ {
		path = appendContour(path, g.Contour(i))
	}
	return path
}

// appendContour emits the path commands for one cyclic contour.
//
// The walk starts at an on-curve point. If the contour has none, it starts
// at the implied midpoint between the last and the first control point.
// Degenerate contours of fewer than two points are dropped.
func appendContour(path []PathCommand, pts []Point) []PathCommand {
	if len(pts) < 2 {
		return path
	}
	start, startX, startY := contourStart(pts)
	path = append(path, PathCommand{Op: MoveTo, X: startX, Y: startY})
	curX, curY := startX, startY
	// walk the cycle; an off-curve point pairs with the following
	// point, on-curve or implied
	for i := 0; i < len(pts); {
		p := pts[(start+i+1)%len(pts)]
		if p.OnCurve {
			path = append(path, PathCommand{
				Op: LineTo, X: float64(p.X), Y: float64(p.Y),
			})
			curX, curY = float64(p.X), float64(p.Y)
			i++
			continue
		}
		q := pts[(start+i+2)%len(pts)]
		endX, endY := float64(q.X), float64(q.Y)
		if !q.OnCurve {
			endX, endY = Midpoint(p, q)
		}
		path = append(path, PathCommand{
			Op: QuadTo,
			X:  endX, Y: endY,
			CX: float64(p.X), CY: float64(p.Y),
		})
		curX, curY = endX, endY
		if q.OnCurve {
			i += 2
		} else {
			i++ // implied midpoint consumed, q starts the next segment
		}
	}
	// close the contour explicitly if the walk did not arrive back at the
	// start (happens when the final segment was consumed as a line)
	if curX != startX || curY != startY {
		path = append(path, PathCommand{Op: LineTo, X: startX, Y: startY})
	}
	return path
}

// contourStart picks the starting point of the cyclic walk: the first
// on-curve point, or the implied midpoint preceding point 0 for contours
// made of off-curve points only. It returns the index of the point before
// the first segment, plus the starting coordinates.
func contourStart(pts []Point) (int, float64, float64) {
	for i, p := range pts {
		if p.OnCurve {
			return i, float64(p.X), float64(p.Y)
		}
	}
	x, y := Midpoint(pts[len(pts)-1], pts[0])
	return len(pts) - 1, x, y
}
