package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/render/diagram"
	"github.com/matzehuels/structviz/pkg/render/nodelink"
	"github.com/matzehuels/structviz/pkg/tree"
	"github.com/matzehuels/structviz/pkg/tree/layout"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    string // tree data file; empty uses the built-in sample
	output   string // output file path
	format   string // png, svg or dot
	width    int    // image width in pixels (png)
	height   int    // image height in pixels (png)
	title    string // diagram title (png)
	legend   bool   // draw the category legend (png)
	detailed bool   // include ids and levels in node labels (svg, dot)
	watch    bool   // re-render whenever the input file changes

	debounce time.Duration // quiet period before a re-render
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:   errors.FormatPNG,
		width:    diagram.DefaultWidth,
		height:   diagram.DefaultHeight,
		title:    diagram.DefaultTitle,
		legend:   true,
		debounce: defaultDebounce,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the directory structure diagram",
		Long: `Render the directory structure as a diagram.

Without flags the built-in structure is drawn to claude_mcp_structure.png
at 1600x1000 pixels, replacing any existing file.

Use --format svg or --format dot for a Graphviz node-link rendering.
Use --watch with --input to re-render each time the input file is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = defaultOutput(opts.format)
			}
			if err := errors.ValidateOutputPath(opts.output); err != nil {
				return err
			}
			if opts.watch && opts.input == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--watch requires --input")
			}

			ctx := cmd.Context()
			if err := c.runRender(ctx, opts); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return c.watchFile(ctx, opts.input, opts.debounce, func() error {
				return c.runRender(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "structure file (.toml, .json or .yaml; default: built-in sample)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: "+diagram.DefaultOutput+" with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png (default), svg, dot")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels (png)")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "image height in pixels (png)")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "diagram title (png)")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the category legend (png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include ids and levels in labels (svg, dot)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "quiet period before re-rendering (with --watch)")

	return cmd
}

// defaultOutput returns the default output path for format.
func defaultOutput(format string) string {
	base := strings.TrimSuffix(diagram.DefaultOutput, filepath.Ext(diagram.DefaultOutput))
	return base + "." + format
}

// runRender loads the tree, lays it out, and writes the requested format.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	t, err := c.loadTree(opts.input)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded structure: %d nodes, %d levels", t.Len(), t.Levels())

	switch opts.format {
	case errors.FormatPNG:
		err = c.renderPNG(t, opts)
	case errors.FormatSVG:
		err = c.renderSVG(ctx, t, opts)
	case errors.FormatDOT:
		if err = validateForGraphviz(t); err == nil {
			err = c.writeOutput(opts.output, []byte(c.toDOT(t, opts)))
		}
	}
	if err != nil {
		return err
	}

	c.printSuccess("Rendered %s", opts.format)
	c.printFile(opts.output)
	c.printStats(t.Len(), len(t.Edges()), t.Levels())
	return nil
}

func (c *CLI) renderPNG(t *tree.Tree, opts renderOpts) error {
	prog := newProgress(c.Logger)
	pos, err := layout.Compute(t, layout.DefaultOptions())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "compute layout")
	}
	prog.done(fmt.Sprintf("Computed layout for %d nodes", len(pos)))

	dopts := diagram.DefaultOptions()
	dopts.Width = opts.width
	dopts.Height = opts.height
	dopts.Title = opts.title
	dopts.Legend = opts.legend

	prog = newProgress(c.Logger)
	img, err := diagram.Render(t, pos, dopts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render diagram")
	}
	prog.done(fmt.Sprintf("Rendered %dx%d image", dopts.Width, dopts.Height))

	if err := diagram.WriteFile(opts.output, img); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write image")
	}
	return nil
}

func (c *CLI) toDOT(t *tree.Tree, opts renderOpts) string {
	return nodelink.ToDOT(t, nodelink.Options{
		Palette:  diagram.DefaultPalette(),
		Detailed: opts.detailed,
	})
}

// validateForGraphviz rejects dangling parents, which Graphviz would
// otherwise render as implicit nodes.
func validateForGraphviz(t *tree.Tree) error {
	for _, e := range t.Edges() {
		if _, ok := t.Node(e.From); !ok {
			return errors.Wrap(errors.ErrCodeInvalidLayout, tree.ErrUnknownParent,
				"node %s references parent %q", e.To, e.From)
		}
	}
	return nil
}

func (c *CLI) renderSVG(ctx context.Context, t *tree.Tree, opts renderOpts) error {
	if err := validateForGraphviz(t); err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	svg, err := nodelink.RenderSVG(ctx, c.toDOT(t, opts))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render svg")
	}
	prog.done("Rendered node-link SVG")
	return c.writeOutput(opts.output, svg)
}

// writeOutput writes data to path, replacing any existing file.
func (c *CLI) writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	c.Logger.Debugf("Wrote %d bytes to %s", len(data), path)
	return nil
}
