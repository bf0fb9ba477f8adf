package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/matzehuels/structviz/pkg/tree"
)

var (
	// ErrNoColor is returned when a node's category has no palette entry.
	ErrNoColor = errors.New("no color for category")

	// ErrInvalidColor is returned when a palette entry is not #RRGGBB.
	ErrInvalidColor = errors.New("invalid hex color")
)

// Palette maps categories to "#RRGGBB" colours.
type Palette map[tree.Category]string

// DefaultPalette returns the standard category colours.
func DefaultPalette() Palette {
	return Palette{
		tree.CategoryRoot:      "#13343B",
		tree.CategoryConfig:    "#4472C4",
		tree.CategoryProcess:   "#70AD47",
		tree.CategoryActions:   "#FF7F50",
		tree.CategoryTemplates: "#9966CC",
		tree.CategoryContext:   "#DC143C",
		tree.CategoryUtilities: "#5D878F",
	}
}

// Color returns the parsed colour for c.
func (p Palette) Color(c tree.Category) (color.RGBA, error) {
	hex, ok := p[c]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrNoColor, c)
	}
	return ParseHex(hex)
}

// Validate checks that every entry parses.
func (p Palette) Validate() error {
	for c, hex := range p {
		if _, err := ParseHex(hex); err != nil {
			return fmt.Errorf("category %s: %w", c, err)
		}
	}
	return nil
}

// ParseHex parses a "#RRGGBB" string into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
