package ttf

// The cmap table maps code-points to glyph indices. A font may carry
// several subtables for different platform/encoding combinations; we pick
// the best Unicode-capable one and interpret formats 4 and 12, which
// between them cover virtually every font in circulation.

// CMapGlyphIndex represents a cmap subtable: a mapping from code-points to
// glyph indices.
type CMapGlyphIndex interface {
	// Lookup returns the glyph index for a code-point. Code-points without
	// a glyph map to index 0 (.notdef); Lookup never fails.
	Lookup(r rune) GlyphIndex
}

// platformEncodingWidth returns the width in bytes of code-points for a
// platform/encoding pair, or a non-positive number for pairs we do not
// interpret. Negative widths mark the preferred (full Unicode repertoire)
// subtables. Taken from the priority scheme the OpenType spec suggests.
func platformEncodingWidth(pid, psid uint16) int {
	switch {
	case pid == 3 && psid == 10: // Windows, UCS-4
		return -4
	case pid == 0 && (psid == 4 || psid == 6): // Unicode, full repertoire
		return -4
	case pid == 3 && psid == 1: // Windows, UCS-2
		return 2
	case pid == 0 && psid <= 3: // Unicode, BMP only
		return 2
	case pid == 3 && psid == 0: // Windows, symbol
		return 1
	}
	return 0
}

// parseCMap selects and interprets the best subtable of the cmap table.
func parseCMap(otf *Font) error {
	tag := T("cmap")
	b := otf.tables[tag].data
	numSubtables, err := b.u16(2)
	if err != nil {
		return errTruncated(tag, "cmap header")
	}
	const headerSize, entrySize = 4, 8
	if _, err := b.view(headerSize, int(numSubtables)*entrySize); err != nil {
		return errTruncated(tag, "encoding records exceed table")
	}
	var bestWidth int
	var bestOffset uint32
	for i := 0; i < int(numSubtables); i++ {
		rec := b[headerSize+i*entrySize:]
		pid, psid := u16(rec), u16(rec[2:])
		width := platformEncodingWidth(pid, psid)
		if width == 0 {
			continue
		}
		// prefer wide Unicode subtables; widths are ranked by |width| with
		// negative meaning full repertoire
		if bestWidth == 0 || rank(width) > rank(bestWidth) {
			bestWidth, bestOffset = width, u32(rec[4:])
		}
	}
	if bestWidth == 0 {
		return errMalformedTable(tag, "no supported character-to-glyph subtable")
	}
	sub, err := b.view(int(bestOffset), len(b)-int(bestOffset))
	if err != nil || len(sub) < 4 {
		return errTruncated(tag, "subtable offset past table")
	}
	format := u16(sub)
	switch format {
	case 4:
		otf.cmap, err = parseCMapFormat4(tag, sub, otf.maxp.numGlyphs)
	case 12:
		otf.cmap, err = parseCMapFormat12(tag, sub, otf.maxp.numGlyphs)
	default:
		err = errMalformedTable(tag, "selected subtable has unsupported format")
	}
	return err
}

func rank(width int) int {
	if width < 0 {
		return 8 - width
	}
	return width
}

// --- Format 4 ----------------------------------------------------------------

// cmapFormat4 is the segment-mapped subtable for the basic multilingual
// plane: parallel arrays of segment end/start/delta/rangeOffset, searched
// by binary search over the segment end codes.
type cmapFormat4 struct {
	data      binarySegm // the whole subtable, for rangeOffset arithmetic
	segCount  int
	numGlyphs int
}

func parseCMapFormat4(tag Tag, b binarySegm, numGlyphs int) (CMapGlyphIndex, error) {
	length, err := b.u16(2)
	if err != nil || int(length) > len(b) {
		return nil, errTruncated(tag, "format 4 length")
	}
	b = b[:length]
	segCountX2, err := b.u16(6)
	if err != nil || segCountX2%2 != 0 || segCountX2 == 0 {
		return nil, errMalformedTable(tag, "format 4 segment count")
	}
	segCount := int(segCountX2 / 2)
	// headers + 4 parallel arrays + reservedPad
	if len(b) < 16+segCount*8 {
		return nil, errTruncated(tag, "format 4 segment arrays")
	}
	return cmapFormat4{data: b, segCount: segCount, numGlyphs: numGlyphs}, nil
}

func (t cmapFormat4) Lookup(r rune) GlyphIndex {
	if r > 0xffff {
		return 0
	}
	c := uint16(r)
	endCodes := t.data[14:]
	startCodes := t.data[16+t.segCount*2:]
	deltas := t.data[16+t.segCount*4:]
	rangeOffsets := t.data[16+t.segCount*6:]
	lo, hi := 0, t.segCount
	for lo < hi {
		seg := (lo + hi) / 2
		if u16(endCodes[seg*2:]) < c {
			lo = seg + 1
		} else {
			hi = seg
		}
	}
	if lo == t.segCount || u16(startCodes[lo*2:]) > c {
		return 0
	}
	delta := u16(deltas[lo*2:])
	rangeOffset := u16(rangeOffsets[lo*2:])
	if rangeOffset == 0 {
		return t.clamp(GlyphIndex(c + delta))
	}
	// rangeOffset is a byte offset from its own location into the
	// glyphIdArray; the spec's "obscure indexing trick"
	idx := 16 + t.segCount*6 + lo*2 + int(rangeOffset) + int(c-u16(startCodes[lo*2:]))*2
	gid, err := t.data.u16(idx)
	if err != nil || gid == 0 {
		return 0
	}
	return t.clamp(GlyphIndex(gid + delta))
}

func (t cmapFormat4) clamp(gid GlyphIndex) GlyphIndex {
	if int(gid) >= t.numGlyphs {
		return 0
	}
	return gid
}

// --- Format 12 ---------------------------------------------------------------

// cmapFormat12 is the segmented-coverage subtable for the full Unicode
// repertoire: a sorted list of (startChar, endChar, startGlyph) groups.
type cmapFormat12 struct {
	groups    []cmapGroup
	numGlyphs int
}

type cmapGroup struct {
	start, end, startGlyph uint32
}

func parseCMapFormat12(tag Tag, b binarySegm, numGlyphs int) (CMapGlyphIndex, error) {
	numGroups, err := b.u32(12)
	if err != nil {
		return nil, errTruncated(tag, "format 12 header")
	}
	groupdata, err := b.view(16, int(numGroups)*12)
	if err != nil {
		return nil, errTruncated(tag, "format 12 groups exceed table")
	}
	groups := make([]cmapGroup, numGroups)
	for i := range groups {
		g := groupdata[i*12:]
		groups[i] = cmapGroup{start: u32(g), end: u32(g[4:]), startGlyph: u32(g[8:])}
		if groups[i].end < groups[i].start {
			return nil, errMalformedTable(tag, "format 12 group end before start")
		}
		if i > 0 && groups[i].start <= groups[i-1].end {
			return nil, errMalformedTable(tag, "format 12 groups not sorted")
		}
	}
	return cmapFormat12{groups: groups, numGlyphs: numGlyphs}, nil
}

func (t cmapFormat12) Lookup(r rune) GlyphIndex {
	c := uint32(r)
	lo, hi := 0, len(t.groups)
	for lo < hi {
		i := (lo + hi) / 2
		switch {
		case c < t.groups[i].start:
			hi = i
		case c > t.groups[i].end:
			lo = i + 1
		default:
			gid := t.groups[i].startGlyph + (c - t.groups[i].start)
			if gid >= uint32(t.numGlyphs) {
				return 0
			}
			return GlyphIndex(gid)
		}
	}
	return 0
}
