// Package diagram renders a laid-out [tree.Tree] as a raster image.
//
// # Usage
//
//	pos, err := layout.Compute(t, layout.DefaultOptions())
//	img, err := diagram.Render(t, pos, diagram.DefaultOptions())
//	err = diagram.WriteFile("structure.png", img)
//
// Nodes are drawn as filled circles coloured by [tree.Category] with the
// label centred underneath. Parent-child pairs are joined by light grey
// lines. A horizontal legend above the plot lists the categories in use.
//
// Layout coordinates are mapped to pixels through fixed axis ranges
// ([Options.XRange], [Options.YRange]) inside the plot margins; the axes
// themselves are not drawn.
//
// Drawing uses [github.com/fogleman/gg] with the Go fonts from
// golang.org/x/image, so no system fonts or external tools are required.
package diagram
