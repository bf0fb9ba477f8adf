// Package nodelink renders a [tree.Tree] as a Graphviz node-link diagram.
//
// # Usage
//
//	dot := nodelink.ToDOT(t, nodelink.Options{Palette: diagram.DefaultPalette()})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. The layout is top-to-bottom (rankdir=TB) with rounded boxes filled
// in category colours, mirroring the raster diagram.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
