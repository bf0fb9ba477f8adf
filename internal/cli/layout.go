package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/dataset"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/tree/layout"
)

// layoutCommand creates the layout command, which prints computed node
// positions without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		input  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed position of every node",
		Long: `Compute the tree layout and print each node's position.

Positions are in layout units: the root sits at (0, 0) and each level
sits further down (more negative y). Use --json for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(input, asJSON)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "structure file (.toml, .json or .yaml; default: built-in sample)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print positions as JSON")

	return cmd
}

// runLayout loads the tree, computes positions, and prints them.
func (c *CLI) runLayout(input string, asJSON bool) error {
	t, err := c.loadTree(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	pos, err := layout.Compute(t, layout.DefaultOptions())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "compute layout")
	}
	prog.done(fmt.Sprintf("Computed layout for %d nodes", len(pos)))

	if asJSON {
		return dataset.WriteLayoutJSON(c.Out, t, pos)
	}

	rows := make([][]string, 0, t.Len())
	for _, p := range dataset.Place(t, pos) {
		rows = append(rows, []string{
			p.ID,
			p.DisplayLabel(),
			strconv.Itoa(p.Level),
			string(p.Category),
			formatCoord(p.X),
			formatCoord(p.Y),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Level", "Category", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(c.Out, tbl.Render())

	lo, hi := pos.Bounds()
	c.printDetail("x: %s … %s   y: %s … %s", formatCoord(lo.X), formatCoord(hi.X), formatCoord(lo.Y), formatCoord(hi.Y))
	c.printNewline()
	c.printNextStep("Render", appName+" render")
	return nil
}

// formatCoord prints a coordinate in its shortest exact form.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
