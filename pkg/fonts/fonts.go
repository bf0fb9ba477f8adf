// Package fonts provides the TrueType faces used for raster rendering.
//
// The Go font family is embedded in golang.org/x/image, so no font files
// need to be installed on the host. Faces are cached per weight and size;
// a returned face must not be used from more than one goroutine at a time.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// cacheSize bounds the number of distinct (weight, size) faces kept.
const cacheSize = 16

type weight int

const (
	weightRegular weight = iota
	weightBold
)

type faceKey struct {
	weight weight
	size   float64
}

var (
	parseOnce     sync.Once
	regular, bold *truetype.Font
	parseErr      error
)

// lru.New only fails for a non-positive size.
var faces, _ = lru.New[faceKey, font.Face](cacheSize)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse regular font: %w", parseErr)
			return
		}
		if bold, parseErr = truetype.Parse(gobold.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse bold font: %w", parseErr)
		}
	})
	return parseErr
}

func face(w weight, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	key := faceKey{w, size}
	if f, ok := faces.Get(key); ok {
		return f, nil
	}
	if err := parse(); err != nil {
		return nil, err
	}
	src := regular
	if w == weightBold {
		src = bold
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size})
	faces.Add(key, f)
	return f, nil
}

// Regular returns a regular-weight face at the given pixel size.
func Regular(size float64) (font.Face, error) {
	return face(weightRegular, size)
}

// Bold returns a bold face at the given pixel size.
func Bold(size float64) (font.Face, error) {
	return face(weightBold, size)
}

// Cached returns the number of faces currently cached.
func Cached() int {
	return faces.Len()
}
