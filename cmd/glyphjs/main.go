package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iris-gfx/iris/core/font"
	"github.com/iris-gfx/iris/core/font/ttf"
	"github.com/iris-gfx/iris/core/font/ttfshape"
	"github.com/iris-gfx/iris/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// glyphjs writes a "glyph playground": an HTML page plus JavaScript which
// draws glyph outlines onto one canvas per glyph, quadratic curves
// preserved. Without -text, every glyph of the font with an outline is
// drawn; with -text, the glyphs of the shaped text, in shaping order.

// tracer traces with key 'iris.fonts'
func tracer() tracing.Trace {
	return tracing.Select("iris.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.iris.fonts":     "Info",
		"trace.iris.resources": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (file path or system font name)")
	text := flag.String("text", "", "Text to shape and draw; empty means all glyphs")
	outdir := flag.String("out", ".", "Output directory")
	max := flag.Int("max", 256, "Maximum number of glyphs to draw")
	flag.Parse()
	switch strings.ToLower(*tlevel) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().SetTraceLevel(tracing.LevelInfo)
	}
	pterm.Info.Println("glyphjs: glyph outlines to canvas JavaScript")
	//
	otf, name := loadFont(*fontname)
	tracer().Infof("font %q has %d glyphs", name, otf.GlyphCount())
	//
	glyphs, err := selectGlyphs(otf, *text, *max)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	//
	dir := filepath.Join(*outdir, "glyph_playground")
	if err := os.MkdirAll(dir, 0755); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}
	js := drawingScript(glyphs)
	if err := os.WriteFile(filepath.Join(dir, "glyph.js"), []byte(js), 0644); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(htmlPage), 0644); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}
	pterm.Info.Printfln("%d glyphs written to %s", len(glyphs), dir)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadFont loads the font given by path or name, the fallback font if none
// was given or the named one cannot be found.
func loadFont(fontname string) (*ttf.Font, string) {
	var sf *font.ScalableFont
	switch {
	case fontname == "":
		sf = font.FallbackFont()
	case strings.ContainsRune(fontname, filepath.Separator) || strings.HasSuffix(fontname, ".ttf"):
		f, err := font.LoadOpenTypeFont(fontname)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		sf = f
	default:
		f, err := resources.ResolveFont(fontname).Font()
		if err != nil {
			pterm.Error.Printfln("%s, using fallback font", err.Error())
		}
		sf = f
	}
	otf, err := ttf.Parse(sf.Binary)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	return otf, sf.Fontname
}

// selectGlyphs picks the glyphs to draw: the shaped glyphs of text, or
// every glyph of the font with an outline, capped at max.
func selectGlyphs(otf *ttf.Font, text string, max int) ([]*ttf.Glyph, error) {
	var glyphs []*ttf.Glyph
	if text != "" {
		sh, err := ttfshape.NewShaper(otf)
		if err != nil {
			return nil, err
		}
		for _, sg := range sh.Shape(text) {
			if len(glyphs) == max {
				break
			}
			glyphs = append(glyphs, sg.Glyph)
		}
		return glyphs, nil
	}
	for gid := 0; gid < otf.GlyphCount() && len(glyphs) < max; gid++ {
		g, err := otf.Glyph(ttf.GlyphIndex(gid))
		if err != nil {
			tracer().Infof("skipping glyph %d: %v", gid, err)
			continue
		}
		if g.ContourCount() == 0 {
			continue
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}

// drawingScript emits, per glyph, a canvas sized to the glyph's bounding
// box and the path commands to draw the outline onto it. Coordinates shift
// by the bounding box origin, and the y axis is flipped.
func drawingScript(glyphs []*ttf.Glyph) string {
	var b strings.Builder
	b.WriteString("// Don't touch this! It's autogenerated!\n")
	b.WriteString("const contentDiv = document.getElementById(\"content\");\n")
	for i, g := range glyphs {
		d := g.Description()
		fmt.Fprintf(&b, "\n// glyph %d\n", g.Index)
		fmt.Fprintf(&b, "const newCanvas%d = document.createElement(\"canvas\");\n", i)
		fmt.Fprintf(&b, "newCanvas%d.width = %d;\n", i, d.Width())
		fmt.Fprintf(&b, "newCanvas%d.height = %d;\n", i, d.Height())
		fmt.Fprintf(&b, "const ctx%d = newCanvas%d.getContext(\"2d\");\n", i, i)
		fmt.Fprintf(&b, "ctx%d.beginPath();\n", i)
		for _, cmd := range g.OutlinePath() {
			x := cmd.X - float64(d.XMin)
			y := float64(d.YMax) - cmd.Y
			switch cmd.Op {
			case ttf.MoveTo:
				fmt.Fprintf(&b, "ctx%d.moveTo(%.2f, %.2f);\n", i, x, y)
			case ttf.LineTo:
				fmt.Fprintf(&b, "ctx%d.lineTo(%.2f, %.2f);\n", i, x, y)
			case ttf.QuadTo:
				cx := cmd.CX - float64(d.XMin)
				cy := float64(d.YMax) - cmd.CY
				fmt.Fprintf(&b, "ctx%d.quadraticCurveTo(%.2f, %.2f, %.2f, %.2f);\n", i, cx, cy, x, y)
			}
		}
		fmt.Fprintf(&b, "ctx%d.fill();\n", i)
		fmt.Fprintf(&b, "contentDiv.appendChild(newCanvas%d);\n", i)
	}
	return b.String()
}

const htmlPage = `
<!-- Don't touch this! It's autogenerated! -->
<html>
    <head>
        <meta content="text/html;charset=utf-8" http-equiv="Content-Type" />
    </head>
    <body>
        <h1>Glyph Playground</h1>
        <div id="content"></div>
        <script src="glyph.js"></script>
    </body>
</html>
`
