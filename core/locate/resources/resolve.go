package resources

import (
	"context"
	"fmt"

	"github.com/flopp/go-findfont"
	"github.com/iris-gfx/iris/core"
	"github.com/iris-gfx/iris/core/font"
)

// NotFound returns an application error for a missing font resource.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, fmt.Sprintf("font not found: %s", res))
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is returned by ResolveFont; Font blocks until loading has
// completed.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

// FindFont returns the file path of a system font with a given name, using
// the usual platform-dependent font directories.
func FindFont(name string) (string, error) {
	fpath, err := findfont.Find(name)
	if err != nil || fpath == "" {
		return "", NotFound(name)
	}
	return fpath, nil
}

// ResolveFont resolves a font by name: first as a system font, then falling
// back to the packaged fallback font. ResolveFont always resolves to some
// font; the error is set alongside the fallback if the requested one was
// not found.
func ResolveFont(name string) FontPromise {
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		fpath, err := FindFont(name)
		if err == nil {
			tracer().Debugf("%s is a system font", name)
			result.font, result.err = font.LoadOpenTypeFont(fpath)
		}
		if result.font == nil {
			if result.err == nil {
				result.err = NotFound(name)
			}
			tracer().Infof("font %s not found, substituting fallback font", name)
			result.font = font.FallbackFont()
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}
