package ttf

// Helpers to assemble minimal TrueType font binaries for testing. The
// builder produces the seven required tables with long loca offsets and a
// format 4 cmap mapping 'A', 'B', … to glyphs 1, 2, ….

type fontBuilder struct {
	glyphs [][]byte // raw glyf entries, index 0 = .notdef

	// mutators, applied to the assembled tables before serialization
	dropTable    string
	mangleLoca   bool
	hMetrics     int // numberOfHMetrics; 0 means one pair per glyph
	trailingLSBs int // entries of the trailing lsb array, if hMetrics is set
}

func put16(b []byte, i int, v uint16) {
	b[i] = byte(v >> 8)
	b[i+1] = byte(v)
}

func put32(b []byte, i int, v uint32) {
	b[i] = byte(v >> 24)
	b[i+1] = byte(v >> 16)
	b[i+2] = byte(v >> 8)
	b[i+3] = byte(v)
}

func (fb fontBuilder) build() []byte {
	n := len(fb.glyphs)
	//
	head := make([]byte, 54)
	put32(head, 12, 0x5f0f3af5) // magic number
	put16(head, 18, 1024)      // unitsPerEm
	put16(head, 50, 1)         // indexToLocFormat: long
	//
	maxp := make([]byte, 6)
	put32(maxp, 0, 0x00010000)
	put16(maxp, 4, uint16(n))
	//
	nh := n
	if fb.hMetrics > 0 {
		nh = fb.hMetrics
	}
	hhea := make([]byte, 36)
	put16(hhea, 34, uint16(nh)) // numberOfHMetrics
	//
	hmtx := make([]byte, nh*4+fb.trailingLSBs*2)
	for i := 0; i < nh; i++ {
		put16(hmtx, i*4, uint16(500+i)) // advance
		put16(hmtx, i*4+2, 50)          // lsb
	}
	for i := 0; i < fb.trailingLSBs; i++ {
		put16(hmtx, nh*4+i*2, 7) // trailing lsb
	}
	//
	loca := make([]byte, (n+1)*4)
	offset := uint32(0)
	for i, g := range fb.glyphs {
		put32(loca, i*4, offset)
		offset += uint32(len(g))
	}
	put32(loca, n*4, offset)
	if fb.mangleLoca && n > 1 {
		put32(loca, 4, offset+16) // offset of glyph 1 past the end
	}
	//
	var glyf []byte
	for _, g := range fb.glyphs {
		glyf = append(glyf, g...)
	}
	//
	cmap := buildCMap4(n)
	//
	type entry struct {
		tag  string
		data []byte
	}
	tables := []entry{ // ascending tag order
		{"cmap", cmap}, {"glyf", glyf}, {"head", head}, {"hhea", hhea},
		{"hmtx", hmtx}, {"loca", loca}, {"maxp", maxp},
	}
	if fb.dropTable != "" {
		kept := tables[:0]
		for _, t := range tables {
			if t.tag != fb.dropTable {
				kept = append(kept, t)
			}
		}
		tables = kept
	}
	//
	font := make([]byte, 12+len(tables)*16)
	put32(font, 0, 0x00010000)
	put16(font, 4, uint16(len(tables)))
	for i, t := range tables {
		rec := 12 + i*16
		copy(font[rec:], t.tag)
		put32(font[rec+8:], 0, uint32(len(font)))
		put32(font[rec+12:], 0, uint32(len(t.data)))
		font = append(font, t.data...)
		for len(font)%4 != 0 {
			font = append(font, 0)
		}
	}
	return font
}

// buildCMap4 maps 'A'+i to glyph 1+i for glyphs 1 … n-1.
func buildCMap4(n int) []byte {
	last := 'A' + rune(n-2)
	if n < 2 {
		last = 'A'
	}
	sub := make([]byte, 16+2*8)
	put16(sub, 0, 4)                // format
	put16(sub, 2, uint16(len(sub))) // length
	put16(sub, 6, 4)                // segCountX2
	segs := sub[14:]
	put16(segs, 0, uint16(last)) // endCodes
	put16(segs, 2, 0xffff)
	put16(segs, 6, 'A') // startCodes, after reservedPad
	put16(segs, 8, 0xffff)
	delta := int16(1 - 'A') // maps 'A' to glyph 1
	put16(segs, 10, uint16(delta))
	put16(segs, 12, 1)
	// rangeOffsets stay zero
	cm := make([]byte, 12)
	put16(cm, 2, 1)  // one encoding record
	put16(cm, 4, 3)  // platform: Windows
	put16(cm, 6, 1)  // encoding: UCS-2
	put32(cm, 8, 12) // subtable offset
	return append(cm, sub...)
}

// simpleGlyph serializes a one-contour simple glyph. Points are (x, y,
// onCurve) triples with absolute coordinates; the encoder always emits
// 16-bit deltas so round trips are predictable.
func simpleGlyph(pts []Point) []byte {
	g := make([]byte, 10)
	put16(g, 0, 1) // numberOfContours
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	put16(g, 2, uint16(minX))
	put16(g, 4, uint16(minY))
	put16(g, 6, uint16(maxX))
	put16(g, 8, uint16(maxY))
	g = append(g, byte((len(pts)-1)>>8), byte(len(pts)-1)) // end point
	g = append(g, 0, 0)                                  // instructionLength
	for _, p := range pts {
		f := byte(0)
		if p.OnCurve {
			f = flagOnCurve
		}
		g = append(g, f)
	}
	prev := int32(0)
	for _, p := range pts {
		g = append(g, byte((p.X-prev)>>8), byte(p.X-prev))
		prev = p.X
	}
	prev = 0
	for _, p := range pts {
		g = append(g, byte((p.Y-prev)>>8), byte(p.Y-prev))
		prev = p.Y
	}
	return g
}

// compoundGlyph serializes a compound glyph with untransformed components
// at word-sized x/y offsets.
func compoundGlyph(refs ...Component) []byte {
	g := make([]byte, 10)
	put16(g, 0, 0xffff) // numberOfContours = -1
	for i, c := range refs {
		flags := uint16(cflagArg1And2AreWords | cflagArgsAreXYValues)
		if i < len(refs)-1 {
			flags |= cflagMoreComponents
		}
		entry := make([]byte, 8)
		put16(entry, 0, flags)
		put16(entry, 2, uint16(c.Glyph))
		put16(entry, 4, uint16(c.DX))
		put16(entry, 6, uint16(c.DY))
		g = append(g, entry...)
	}
	return g
}

// a closed triangle with all points on-curve
func triangleGlyph() []byte {
	return simpleGlyph([]Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 100, Y: 0, OnCurve: true},
		{X: 50, Y: 80, OnCurve: true},
	})
}

// testFont builds a font with a .notdef triangle and the given extra
// glyphs, mapped from 'A' upwards.
func testFont(extra ...[]byte) []byte {
	glyphs := append([][]byte{triangleGlyph()}, extra...)
	return fontBuilder{glyphs: glyphs}.build()
}
