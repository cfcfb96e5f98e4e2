// Package fonts provides the font used for raster text.
//
// The Go Regular font ships inside golang.org/x/image, so raster output does
// not depend on fonts installed on the host. The parsed font source is
// computed once on first access and shared.
package fonts

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used in SVG output. Go Regular is listed
// first so SVG and PNG output look alike where the font is installed.
const FontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	regular     *text.FontSource
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the shared Go Regular font source.
func Regular() (*text.FontSource, error) {
	regularOnce.Do(func() {
		regular, regularErr = text.NewFontSource(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face of the given size in pixels.
func Face(size float64) (text.Face, error) {
	src, err := Regular()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// RegularTTF returns the raw font bytes.
func RegularTTF() []byte { return goregular.TTF }
