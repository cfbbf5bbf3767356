package ttf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestCMapLookup(t *testing.T) {
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
	var buf sfnt.Buffer
	for _, r := range "AZaz09 .,;!?€äöüßΩ–" {
		gid := otf.GlyphIndex(r)
		refGid, err := ref.GlyphIndex(&buf, r)
		if err != nil {
			t.Fatal(err)
		}
		if gid != GlyphIndex(refGid) {
			t.Errorf("glyph index of %#U: expected %d, got %d", r, refGid, gid)
		}
		if gid == 0 {
			t.Errorf("expected %#U to have a glyph, hasn't", r)
		}
	}
}

func TestCMapLookupUnmapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []rune{0xe01, 0xfdd0, 0x10ffff} { // not covered by the font
		if gid := otf.GlyphIndex(r); gid != 0 {
			t.Errorf("expected %#U to map to .notdef, got glyph %d", r, gid)
		}
	}
}

func TestCMapSynthetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.fonts")
	defer teardown()
	//
	otf, err := Parse(testFont(triangleGlyph(), triangleGlyph()))
	if err != nil {
		t.Fatal(err)
	}
	if gid := otf.GlyphIndex('A'); gid != 1 {
		t.Errorf("expected 'A' to map to glyph 1, got %d", gid)
	}
	if gid := otf.GlyphIndex('B'); gid != 2 {
		t.Errorf("expected 'B' to map to glyph 2, got %d", gid)
	}
	if gid := otf.GlyphIndex('C'); gid != 0 {
		t.Errorf("expected 'C' to map to .notdef, got %d", gid)
	}
	if gid := otf.GlyphIndex('切'); gid != 0 {
		t.Errorf("expected unmapped CJK rune to map to .notdef, got %d", gid)
	}
}
