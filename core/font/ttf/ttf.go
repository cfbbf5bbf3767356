package ttf

import (
	"golang.org/x/image/font/sfnt"
)

// Font represents the internal structure of a TrueType font.
// It is used to navigate properties of a font for shaping and rendering
// tasks.
//
// A Font is constructed once by Parse and never mutated afterwards; it may
// be handed out to any number of concurrent readers without locking.
type Font struct {
	Header *FontHeader
	tables map[Tag]Table
	head   headTable
	maxp   maxpTable
	hhea   hheaTable
	hmtx   hmtxTable
	loca   locaTable
	glyf   binarySegm
	cmap   CMapGlyphIndex
	names  nameTable
}

// FontHeader is a directory of the top-level tables in a font. If the font
// file contains only one font, the table directory will begin at byte 0 of
// the file.
//
// Fonts with TrueType outlines use the value 0x00010000 for the FontType.
// The Apple specification additionally allows for 'true' and 'typ1'.
// Fonts containing CFF data use 0x4F54544F ('OTTO'); these are not
// supported by this package.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, a zero Table and false are returned.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification, e.g. one of "head", "maxp", "loca", "glyf", "hmtx", "cmap".
func (otf *Font) Table(tag Tag) (Table, bool) {
	t, ok := otf.tables[tag]
	return t, ok
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// UnitsPerEm returns the granularity of the font's em square.
func (otf *Font) UnitsPerEm() sfnt.Units {
	return sfnt.Units(otf.head.unitsPerEm)
}

// GlyphCount returns the number of glyphs contained in the font.
func (otf *Font) GlyphCount() int {
	return otf.maxp.numGlyphs
}

// GlyphIndex returns the glyph index for the given code-point.
//
// It returns 0 if there is no glyph for r. The OpenType specification says
// that "Character codes that do not correspond to any glyph in the font
// should be mapped to glyph index 0. The glyph at this location must be a
// special glyph representing a missing character, commonly known as
// .notdef."
func (otf *Font) GlyphIndex(r rune) GlyphIndex {
	return otf.cmap.Lookup(r)
}

// Metrics returns the horizontal metrics for a glyph: its advance width
// and its left side bearing, in font units.
// Out-of-range indices report the metrics of glyph 0.
func (otf *Font) Metrics(gid GlyphIndex) (advance sfnt.Units, lsb sfnt.Units) {
	if int(gid) >= otf.maxp.numGlyphs {
		gid = 0
	}
	return otf.hmtx.metrics(gid)
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType spec as:
// Array of four uint8s (length = 32 bits) used to identify a table,
// design-variation axis, script, language system, feature, or baseline.
type Tag uint32

// MakeTag creates a Tag from the first 4 bytes of b.
func MakeTag(b []byte) Tag {
	if len(b) < 4 {
		b = append(b, []byte{0, 0, 0, 0}[:4-len(b)]...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as
// appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	})
}

// --- Table -----------------------------------------------------------------

// Table is one entry of the font's table directory: a tagged byte segment
// of the font's binary data.
type Table struct {
	tag    Tag
	offset uint32
	length uint32
	data   binarySegm
}

// Extent returns offset and byte size of the table within the font's
// binary data.
func (t Table) Extent() (uint32, uint32) {
	return t.offset, t.length
}

// Binary returns the bytes of this table; clients must treat them as
// read-only.
func (t Table) Binary() []byte {
	return t.data
}

// String returns the 4-letter name of the table.
func (t Table) String() string {
	return t.tag.String()
}

// --- Typed table views -------------------------------------------------------

// headTable gives global information about the font.
// indexToLocFormat is needed to interpret the loca table: 0 for short
// offsets, 1 for long.
type headTable struct {
	unitsPerEm       uint16
	indexToLocFormat int16
}

// maxpTable establishes the memory requirements of the font; we only care
// for the glyph count.
type maxpTable struct {
	numGlyphs int
}

// hheaTable holds the layout of the hmtx table.
type hheaTable struct {
	numberOfHMetrics int
}

// hmtxTable holds paired advance widths and left side bearings, indexed by
// glyph. Glyphs at numberOfHMetrics and beyond reuse the advance width of
// the last pair; their side bearings sit in a trailing array (which fonts
// may omit).
type hmtxTable struct {
	advances []uint16 // numberOfHMetrics entries
	bearings []int16  // numberOfHMetrics + len(trailing) entries
}

// metrics reports advance and lsb for a glyph. Glyphs past the hMetrics
// pairs reuse the advance of the last pair; glyphs past the (possibly cut
// short) trailing array have side bearing 0.
func (hmtx hmtxTable) metrics(gid GlyphIndex) (advance sfnt.Units, lsb sfnt.Units) {
	if len(hmtx.advances) == 0 {
		return 0, 0
	}
	g := int(gid)
	adv := hmtx.advances[len(hmtx.advances)-1]
	if g < len(hmtx.advances) {
		adv = hmtx.advances[g]
	}
	var side int16
	if g < len(hmtx.bearings) {
		side = hmtx.bearings[g]
	}
	return sfnt.Units(adv), sfnt.Units(side)
}

// locaTable indexes glyph locations within the glyf table. Offsets are
// stored fully decoded (short entries doubled), numGlyphs+1 of them,
// non-decreasing.
type locaTable struct {
	offsets []uint32
}
