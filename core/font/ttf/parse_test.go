package ttf

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if otf.Header.FontType != 0x00010000 {
		t.Errorf("expected TrueType font type, got %#x", otf.Header.FontType)
	}
	if int(otf.Header.TableCount) != len(otf.TableTags()) {
		t.Errorf("table directory announces %d tables, read %d",
			otf.Header.TableCount, len(otf.TableTags()))
	}
	for _, tag := range requiredTables {
		table, ok := otf.Table(tag)
		if !ok {
			t.Fatalf("expected font to have table %s, hasn't", tag)
		}
		if _, size := table.Extent(); size == 0 || len(table.Binary()) != int(size) {
			t.Errorf("table %s has inconsistent extent", tag)
		}
	}
	t.Logf("font %q has %d glyphs", otf.FullName(), otf.GlyphCount())
	if otf.GlyphCount() == 0 {
		t.Errorf("expected font to have glyphs, hasn't")
	}
}

func TestParseBadMagic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otto := make([]byte, 64)
	copy(otto, "OTTO") // CFF flavored, not supported
	if _, err := Parse(otto); ErrorKind(err) != BadMagic {
		t.Errorf("expected bad-magic error for CFF font, got %v", err)
	}
	if _, err := Parse([]byte{0, 1}); ErrorKind(err) != TruncatedBuffer {
		t.Errorf("expected truncation error for 2-byte font, got %v", err)
	}
}

func TestParseMissingTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	font := fontBuilder{glyphs: [][]byte{triangleGlyph()}, dropTable: "glyf"}.build()
	_, err := Parse(font)
	if ErrorKind(err) != MissingTable {
		t.Fatalf("expected missing-table error, got %v", err)
	}
	var ferr *FormatError
	if !errors.As(err, &ferr) || ferr.Table() != T("glyf") {
		t.Errorf("expected error to name the glyf table, got %v", err)
	}
}

func TestParseTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	// cutting the font inside the glyf table truncates a table extent
	if _, err := Parse(goregular.TTF[:1024]); ErrorKind(err) != TruncatedBuffer {
		t.Errorf("expected truncation error for cut font, got %v", err)
	}
}

func TestParseMalformedLoca(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	font := fontBuilder{
		glyphs:     [][]byte{triangleGlyph(), triangleGlyph(), triangleGlyph()},
		mangleLoca: true,
	}.build()
	_, err := Parse(font)
	if ErrorKind(err) != MalformedTable {
		t.Fatalf("expected malformed-table error for decreasing loca, got %v", err)
	}
}

func TestMetricsAgainstSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if otf.UnitsPerEm() != ref.UnitsPerEm() {
		t.Errorf("expected %d units per em, got %d", ref.UnitsPerEm(), otf.UnitsPerEm())
	}
	// with ppem = unitsPerEm the reference advance is font units in 26.6
	var buf sfnt.Buffer
	ppem := fixed.I(int(ref.UnitsPerEm()))
	for _, r := range "AjW@." {
		gid := otf.GlyphIndex(r)
		adv, _ := otf.Metrics(gid)
		refAdv, err := ref.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), ppem, 0)
		if err != nil {
			t.Fatal(err)
		}
		if fixed.I(int(adv)) != refAdv {
			t.Errorf("advance of %q: expected %v, got %d", r, refAdv, adv)
		}
	}
}

func TestMetricsOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(testFont(triangleGlyph()))
	if err != nil {
		t.Fatal(err)
	}
	adv0, lsb0 := otf.Metrics(0)
	adv, lsb := otf.Metrics(GlyphIndex(otf.GlyphCount() + 7))
	if adv != adv0 || lsb != lsb0 {
		t.Errorf("expected out-of-range metrics to fall back to glyph 0")
	}
}

func TestMetricsShortTrailing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	// one hMetrics pair for three glyphs, trailing lsb array one entry
	// short: glyph 1 has a trailing lsb, glyph 2 has not
	font := fontBuilder{
		glyphs:       [][]byte{triangleGlyph(), triangleGlyph(), triangleGlyph()},
		hMetrics:     1,
		trailingLSBs: 1,
	}.build()
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	adv0, _ := otf.Metrics(0)
	adv, lsb := otf.Metrics(1)
	if adv != adv0 {
		t.Errorf("expected glyph 1 to reuse the last hMetrics advance %d, got %d", adv0, adv)
	}
	if lsb != 7 {
		t.Errorf("expected glyph 1 to read its trailing lsb, got %d", lsb)
	}
	adv, lsb = otf.Metrics(2)
	if adv != adv0 {
		t.Errorf("expected glyph 2 to reuse the last hMetrics advance %d, got %d", adv0, adv)
	}
	if lsb != 0 {
		t.Errorf("expected zero lsb for glyph past the trailing array, got %d", lsb)
	}
}

func TestNameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	family := otf.FamilyName()
	t.Logf("family name = %q", family)
	if family == "" {
		t.Errorf("expected font to carry a family name, hasn't")
	}
	// synthetic fonts have no name table; lookups stay silent
	synth, err := Parse(testFont())
	if err != nil {
		t.Fatal(err)
	}
	if synth.FamilyName() != "" {
		t.Errorf("expected nameless font to report empty family name")
	}
}
