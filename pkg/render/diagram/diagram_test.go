package diagram

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/structviz/pkg/dataset"
	"github.com/matzehuels/structviz/pkg/tree"
	"github.com/matzehuels/structviz/pkg/tree/layout"
)

func sample(t *testing.T) (*tree.Tree, layout.Positions) {
	t.Helper()
	tr, err := dataset.SampleTree()
	if err != nil {
		t.Fatal(err)
	}
	pos, err := layout.Compute(tr, layout.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return tr, pos
}

func TestRenderSampleDimensions(t *testing.T) {
	tr, pos := sample(t)
	img, err := Render(tr, pos, DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Errorf("image = %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultWidth, DefaultHeight)
	}
}

func TestRenderColors(t *testing.T) {
	tr, pos := sample(t)
	opts := DefaultOptions()
	img, err := Render(tr, pos, opts)
	if err != nil {
		t.Fatal(err)
	}

	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("background = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}

	want, _ := ParseHex(opts.Palette[tree.CategoryRoot])
	x, y := PixelOf(pos["project"], opts)
	r, g, b, _ = img.At(int(x), int(y)).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("root marker centre = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestPixelOf(t *testing.T) {
	opts := DefaultOptions()
	x, y := PixelOf(layout.Point{X: opts.XRange.Min, Y: opts.YRange.Max}, opts)
	if x != float64(opts.Margin.Left) || y != float64(opts.Margin.Top) {
		t.Errorf("top-left = (%v, %v), want (%d, %d)", x, y, opts.Margin.Left, opts.Margin.Top)
	}
	x, y = PixelOf(layout.Point{X: opts.XRange.Max, Y: opts.YRange.Min}, opts)
	if x != float64(opts.Width-opts.Margin.Right) || y != float64(opts.Height-opts.Margin.Bottom) {
		t.Errorf("bottom-right = (%v, %v)", x, y)
	}
}

func TestRenderErrors(t *testing.T) {
	tr, pos := sample(t)

	noRoot := DefaultOptions()
	delete(noRoot.Palette, tree.CategoryRoot)

	badHex := DefaultOptions()
	badHex.Palette[tree.CategoryConfig] = "blue"

	tiny := DefaultOptions()
	tiny.Width = 100

	flat := DefaultOptions()
	flat.YRange = Range{Min: 1, Max: 1}

	partial := layout.Positions{"project": {}}

	tests := []struct {
		name    string
		pos     layout.Positions
		opts    Options
		wantErr error
	}{
		{"missing color", pos, noRoot, ErrNoColor},
		{"invalid color", pos, badHex, ErrInvalidColor},
		{"no plot area", pos, tiny, ErrInvalidSize},
		{"empty range", pos, flat, ErrInvalidRange},
		{"missing position", partial, DefaultOptions(), ErrMissingPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tr, tt.pos, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	tr, pos := sample(t)
	img, err := Render(tr, pos, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), DefaultOutput)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, img); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("PNG = %dx%d, want %dx%d", cfg.Width, cfg.Height, DefaultWidth, DefaultHeight)
	}
}

func TestWriteFileError(t *testing.T) {
	tr, pos := sample(t)
	img, _ := Render(tr, pos, DefaultOptions())
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WriteFile(path, img); err == nil {
		t.Error("WriteFile() into a missing directory should fail")
	}
}

func TestWritePNG(t *testing.T) {
	tr, pos := sample(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 800, 500
	img, err := Render(tr, pos, opts)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 500 {
		t.Errorf("PNG = %dx%d, want 800x500", cfg.Width, cfg.Height)
	}
}

func TestMarkerSize(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{{0, 40}, {1, 28}, {2, 22}, {3, 22}}
	for _, tt := range tests {
		if got := MarkerSize(tt.level); got != tt.want {
			t.Errorf("MarkerSize(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#13343B")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0x13 || c.G != 0x34 || c.B != 0x3B || c.A != 0xff {
		t.Errorf("ParseHex() = %v", c)
	}
	for _, bad := range []string{"", "13343B", "#13343", "#GGGGGG"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}
