package ttf

// Magic numbers for sfnt version tags. Only TrueType-flavored outlines are
// accepted; CFF-flavored fonts ('OTTO') are rejected with BadMagic.
const (
	sfntVersionTrueType      = 0x00010000
	sfntVersionAppleTrueType = 0x74727565 // 'true'
	sfntVersionTypo1         = 0x74797031 // 'typ1'
)

// Required tables. Parse fails with a MissingTable error if any of these is
// absent from the font's table directory.
var requiredTables = []Tag{
	T("head"), T("maxp"), T("hhea"), T("hmtx"), T("loca"), T("glyf"), T("cmap"),
}

// Parse parses the binary representation of a TrueType font, i.e. an
// OpenType font with 'glyf' outlines. Parse reads the table directory and
// the tables needed for glyph rendering; all remaining tables stay
// accessible as raw byte segments via Font.Table.
//
// Parse is strict about font-level structure: a bad version tag, a missing
// required table, table extents beyond the font data, or inconsistent loca
// offsets abort the construction of the Font. Per-glyph problems, on the
// other hand, are not detected here; they surface when the respective glyph
// is decoded.
//
// The returned Font retains fontbytes and will never modify it.
func Parse(fontbytes []byte) (*Font, error) {
	if len(fontbytes) < 12 {
		return nil, errTruncated(0, "font header")
	}
	src := binarySegm(fontbytes)
	version, _ := src.u32(0)
	switch version {
	case sfntVersionTrueType, sfntVersionAppleTrueType, sfntVersionTypo1:
		// TrueType outlines, go ahead
	default:
		return nil, errBadMagic(version)
	}
	numTables, _ := src.u16(4)
	otf := &Font{
		Header: &FontHeader{FontType: version, TableCount: numTables},
		tables: make(map[Tag]Table, numTables),
	}
	if err := parseTableDirectory(src, otf); err != nil {
		return nil, err
	}
	for _, tag := range requiredTables {
		if _, ok := otf.tables[tag]; !ok {
			return nil, errMissingTable(tag)
		}
	}
	if err := parseTables(otf); err != nil {
		return nil, err
	}
	tracer().Infof("font contains %d tables, %d glyphs", len(otf.tables), otf.maxp.numGlyphs)
	return otf, nil
}

// parseTableDirectory reads the 16-byte table records following the font
// header. Tags have to appear in ascending order and table extents have to
// lie within the font data.
func parseTableDirectory(src binarySegm, otf *Font) error {
	const recordSize = 16
	n := int(otf.Header.TableCount)
	records, err := src.view(12, n*recordSize)
	if err != nil {
		return errTruncated(0, "table directory")
	}
	var prev Tag
	for i := 0; i < n; i++ {
		rec := records[i*recordSize:]
		tag := Tag(u32(rec))
		if i > 0 && tag <= prev {
			return errMalformedTable(tag, "table directory tags not in ascending order")
		}
		prev = tag
		offset, size := u32(rec[8:]), u32(rec[12:])
		if offset%4 != 0 {
			return errMalformedTable(tag, "table offset not 32-bit aligned")
		}
		data, err := src.view(int(offset), int(size))
		if err != nil {
			return errTruncated(tag, "extent of table")
		}
		tracer().Debugf("table %s at %d, %d bytes", tag, offset, size)
		otf.tables[tag] = Table{tag: tag, offset: offset, length: size, data: data}
	}
	return nil
}

// parseTables interprets the required tables and stores typed views of them
// in otf. Order matters: head and maxp feed loca, hhea feeds hmtx.
func parseTables(otf *Font) error {
	steps := []func(*Font) error{
		parseHead,
		parseMaxP,
		parseHHea,
		parseHMtx,
		parseLoca,
		parseGlyf,
		parseCMap,
		parseName,
	}
	for _, step := range steps {
		if err := step(otf); err != nil {
			return err
		}
	}
	return nil
}

// parseHead interprets the font header table. We need the em-square
// granularity and the flag which selects between short and long loca
// offsets.
func parseHead(otf *Font) error {
	tag := T("head")
	b := otf.tables[tag].data
	if len(b) < 54 {
		return errTruncated(tag, "54 bytes expected")
	}
	upem, _ := b.u16(18)
	locfmt, _ := b.i16(50)
	if upem == 0 {
		return errMalformedTable(tag, "unitsPerEm is zero")
	}
	if locfmt != 0 && locfmt != 1 {
		return errMalformedTable(tag, "indexToLocFormat neither short nor long")
	}
	otf.head = headTable{unitsPerEm: upem, indexToLocFormat: locfmt}
	return nil
}

func parseMaxP(otf *Font) error {
	tag := T("maxp")
	b := otf.tables[tag].data
	n, err := b.u16(4)
	if err != nil {
		return errTruncated(tag, "6 bytes expected")
	}
	otf.maxp = maxpTable{numGlyphs: int(n)}
	return nil
}

func parseHHea(otf *Font) error {
	tag := T("hhea")
	b := otf.tables[tag].data
	n, err := b.u16(34)
	if err != nil {
		return errTruncated(tag, "36 bytes expected")
	}
	if int(n) > otf.maxp.numGlyphs || n == 0 {
		return errMalformedTable(tag, "numberOfHMetrics inconsistent with glyph count")
	}
	otf.hhea = hheaTable{numberOfHMetrics: int(n)}
	return nil
}

// parseHMtx reads the horizontal metrics: numberOfHMetrics (advance, lsb)
// pairs, then one bare lsb per remaining glyph. Fonts are allowed to cut the
// trailing lsb array short; glyphs beyond it fall back to the metrics of
// glyph 0 (see hmtxTable.metrics).
func parseHMtx(otf *Font) error {
	tag := T("hmtx")
	b := otf.tables[tag].data
	n := otf.hhea.numberOfHMetrics
	if len(b) < n*4 {
		return errTruncated(tag, "metrics pairs exceed table")
	}
	trailing := (len(b) - n*4) / 2
	if max := otf.maxp.numGlyphs - n; trailing > max {
		trailing = max
	}
	hmtx := hmtxTable{
		advances: make([]uint16, n),
		bearings: make([]int16, n+trailing),
	}
	for i := 0; i < n; i++ {
		hmtx.advances[i] = u16(b[i*4:])
		hmtx.bearings[i] = i16(b[i*4+2:])
	}
	for i := 0; i < trailing; i++ {
		hmtx.bearings[n+i] = i16(b[n*4+i*2:])
	}
	otf.hmtx = hmtx
	return nil
}

// parseLoca decodes the glyph location index eagerly: numGlyphs+1 offsets
// into the glyf table, short ones doubled. Offsets have to be
// non-decreasing; a decreasing pair makes glyph extents ambiguous and
// aborts the parse.
func parseLoca(otf *Font) error {
	tag := T("loca")
	b := otf.tables[tag].data
	n := otf.maxp.numGlyphs + 1
	offsets := make([]uint32, n)
	if otf.head.indexToLocFormat == 0 {
		if len(b) < n*2 {
			return errTruncated(tag, "short offsets exceed table")
		}
		for i := 0; i < n; i++ {
			offsets[i] = uint32(u16(b[i*2:])) * 2
		}
	} else {
		if len(b) < n*4 {
			return errTruncated(tag, "long offsets exceed table")
		}
		for i := 0; i < n; i++ {
			offsets[i] = u32(b[i*4:])
		}
	}
	for i := 1; i < n; i++ {
		if offsets[i] < offsets[i-1] {
			return errMalformedTable(tag, "offsets not monotonically increasing")
		}
	}
	otf.loca = locaTable{offsets: offsets}
	return nil
}

func parseGlyf(otf *Font) error {
	tag := T("glyf")
	b := otf.tables[tag].data
	if last := otf.loca.offsets[len(otf.loca.offsets)-1]; int(last) > len(b) {
		return errTruncated(tag, "loca offsets point past table")
	}
	otf.glyf = b
	return nil
}
