package diagram

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/structviz/pkg/fonts"
	"github.com/matzehuels/structviz/pkg/tree"
	"github.com/matzehuels/structviz/pkg/tree/layout"
)

const (
	DefaultWidth  = 1600                          // default image width in pixels
	DefaultHeight = 1000                          // default image height in pixels
	DefaultOutput = "claude_mcp_structure.png"    // default output path
	DefaultTitle  = "Claude Code & MCP Structure" // default diagram title
)

var (
	// ErrInvalidSize is returned when the image or plot area has no room to draw.
	ErrInvalidSize = errors.New("invalid image size")

	// ErrInvalidRange is returned when an axis range is empty or inverted.
	ErrInvalidRange = errors.New("invalid axis range")

	// ErrMissingPosition is returned when a node has no computed position.
	ErrMissingPosition = errors.New("node has no position")
)

var (
	colorBackground = color.White
	colorEdge       = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xff}
	colorOutline    = color.White
	colorText       = color.Black
)

// Range is a closed interval on one axis in layout units.
type Range struct {
	Min, Max float64
}

// Margin is the pixel space reserved around the plot area.
type Margin struct {
	Left, Right, Top, Bottom int
}

// Options configures [Render].
type Options struct {
	Width, Height int
	Title         string
	Palette       Palette
	XRange        Range
	YRange        Range
	Margin        Margin
	Legend        bool

	EdgeWidth    float64 // parent-child line width in pixels
	OutlineWidth float64 // marker outline width in pixels
	LabelSize    float64 // node label font size in pixels
	TitleSize    float64 // title font size in pixels
}

// DefaultOptions returns the settings for the standard structure diagram.
func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Title:        DefaultTitle,
		Palette:      DefaultPalette(),
		XRange:       Range{Min: -15, Max: 15},
		YRange:       Range{Min: -12, Max: 2},
		Margin:       Margin{Left: 80, Right: 80, Top: 100, Bottom: 80},
		Legend:       true,
		EdgeWidth:    1.5,
		OutlineWidth: 2,
		LabelSize:    10,
		TitleSize:    17,
	}
}

// Validate checks sizes, ranges and palette entries.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.Width-o.Margin.Left-o.Margin.Right <= 0 || o.Height-o.Margin.Top-o.Margin.Bottom <= 0 {
		return fmt.Errorf("%w: margins leave no plot area in %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.XRange.Max <= o.XRange.Min {
		return fmt.Errorf("%w: x [%v, %v]", ErrInvalidRange, o.XRange.Min, o.XRange.Max)
	}
	if o.YRange.Max <= o.YRange.Min {
		return fmt.Errorf("%w: y [%v, %v]", ErrInvalidRange, o.YRange.Min, o.YRange.Max)
	}
	return o.Palette.Validate()
}

// MarkerSize returns the marker diameter in pixels for a node at level.
func MarkerSize(level int) float64 {
	switch level {
	case 0:
		return 40
	case 1:
		return 28
	default:
		return 22
	}
}

// projector maps layout coordinates to pixels.
type projector struct {
	left, top     float64
	width, height float64
	x, y          Range
}

func newProjector(o Options) projector {
	return projector{
		left:   float64(o.Margin.Left),
		top:    float64(o.Margin.Top),
		width:  float64(o.Width - o.Margin.Left - o.Margin.Right),
		height: float64(o.Height - o.Margin.Top - o.Margin.Bottom),
		x:      o.XRange,
		y:      o.YRange,
	}
}

// Project returns the pixel coordinates of p. Y is flipped so that larger
// layout Y values appear higher in the image.
func (pr projector) Project(p layout.Point) (float64, float64) {
	px := pr.left + (p.X-pr.x.Min)/(pr.x.Max-pr.x.Min)*pr.width
	py := pr.top + (pr.y.Max-p.Y)/(pr.y.Max-pr.y.Min)*pr.height
	return px, py
}

// PixelOf returns where a layout point lands in an image drawn with opts.
func PixelOf(p layout.Point, opts Options) (x, y float64) {
	return newProjector(opts).Project(p)
}

// Render draws t at the given positions and returns the raster image.
//
// Edges are drawn first, one line per parent-child pair, then nodes grouped
// by category in palette order so later categories paint over earlier ones.
func Render(t *tree.Tree, pos layout.Positions, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	nodes := t.Nodes()
	for _, n := range nodes {
		if _, ok := pos[n.ID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPosition, n.ID)
		}
		if _, err := opts.Palette.Color(n.Category); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	labelFace, err := fonts.Regular(opts.LabelSize)
	if err != nil {
		return nil, err
	}
	titleFace, err := fonts.Bold(opts.TitleSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(colorBackground)
	dc.Clear()

	pr := newProjector(opts)

	dc.SetColor(colorEdge)
	dc.SetLineWidth(opts.EdgeWidth)
	for _, e := range t.Edges() {
		from, ok := pos[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPosition, e.From)
		}
		x1, y1 := pr.Project(from)
		x2, y2 := pr.Project(pos[e.To])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	dc.SetFontFace(labelFace)
	present := make(map[tree.Category]bool)
	for _, cat := range tree.Categories {
		fill, _ := opts.Palette.Color(cat)
		for _, n := range nodes {
			if n.Category != cat {
				continue
			}
			present[cat] = true
			x, y := pr.Project(pos[n.ID])
			r := MarkerSize(n.Level) / 2
			drawMarker(dc, x, y, r, fill, opts.OutlineWidth)

			dc.SetColor(colorText)
			dc.DrawStringAnchored(n.DisplayLabel(), x, y+r+opts.OutlineWidth+2, 0.5, 1)
		}
	}

	if opts.Legend {
		drawLegend(dc, pr, opts, present)
	}

	if opts.Title != "" {
		dc.SetFontFace(titleFace)
		dc.SetColor(colorText)
		dc.DrawStringAnchored(opts.Title, pr.left, pr.top/3, 0, 0.5)
	}

	return dc.Image(), nil
}

func drawMarker(dc *gg.Context, x, y, r float64, fill color.Color, outline float64) {
	dc.DrawCircle(x, y, r)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(colorOutline)
	dc.SetLineWidth(outline)
	dc.Stroke()
}

// drawLegend lays out one swatch per present category in a single centred
// row just above the plot area.
func drawLegend(dc *gg.Context, pr projector, opts Options, present map[tree.Category]bool) {
	const (
		swatch = 12.0
		gap    = 6.0
		space  = 24.0
	)

	var entries []tree.Category
	total := 0.0
	for _, cat := range tree.Categories {
		if !present[cat] {
			continue
		}
		if len(entries) > 0 {
			total += space
		}
		w, _ := dc.MeasureString(cat.Title())
		total += swatch + gap + w
		entries = append(entries, cat)
	}
	if len(entries) == 0 {
		return
	}

	x := pr.left + pr.width/2 - total/2
	y := pr.top - 0.05*pr.height - swatch/2
	for _, cat := range entries {
		fill, _ := opts.Palette.Color(cat)
		drawMarker(dc, x+swatch/2, y, swatch/2, fill, 1)

		dc.SetColor(colorText)
		label := cat.Title()
		dc.DrawStringAnchored(label, x+swatch+gap, y, 0, 0.35)
		w, _ := dc.MeasureString(label)
		x += swatch + gap + w + space
	}
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteFile writes img as PNG to path, replacing any existing file.
func WriteFile(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
