package resources

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestResolveFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.resources")
	defer teardown()
	//
	promise := ResolveFont("no-such-font-family-exists")
	f, err := promise.Font()
	if err == nil {
		t.Errorf("expected an error for an unknown font name")
	}
	if f == nil || len(f.Binary) == 0 {
		t.Fatal("expected the fallback font as a substitute")
	}
	t.Logf("substituted %s", f.Fontname)
}

func TestFindSystemFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iris.resources")
	defer teardown()
	//
	// system font sets differ between machines; just exercise the lookup
	for _, name := range []string{"Arial", "DejaVuSans", "Helvetica"} {
		if fpath, err := FindFont(name); err == nil {
			t.Logf("found %s at %s", name, fpath)
			return
		}
	}
	t.Skip("no well-known system font found on this machine")
}
