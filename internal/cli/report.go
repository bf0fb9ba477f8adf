package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/report"
)

// reportOpts holds the command-line flags for the report command.
type reportOpts struct {
	input   string   // analysis data file; empty uses the built-in sample
	systems []string // names to print; empty prints all
	pick    bool     // choose systems interactively
}

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var opts reportOpts

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the system analysis summaries",
		Long: `Print a text summary for each analysed system: its strengths and
how it is organised. Systems are printed in file order.

Without --input the built-in analyses are used. Narrow the output with
--system (repeatable) or choose interactively with --pick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pick && len(opts.systems) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--pick and --system cannot be combined")
			}
			return c.runReport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "analysis file (.toml, .json or .yaml; default: built-in sample)")
	cmd.Flags().StringSliceVarP(&opts.systems, "system", "s", nil, "only print the named system (repeatable)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose systems interactively")

	return cmd
}

func (c *CLI) runReport(ctx context.Context, opts reportOpts) error {
	analyses, err := c.loadAnalyses(opts.input)
	if err != nil {
		return err
	}

	switch {
	case opts.pick:
		analyses, err = c.pickSystems(ctx, analyses)
		if err != nil {
			return err
		}
		if len(analyses) == 0 {
			c.printDetail("No selection made")
			return nil
		}
	case len(opts.systems) > 0:
		analyses, err = filterSystems(analyses, opts.systems)
		if err != nil {
			return err
		}
	}

	if err := report.Print(c.Out, analyses); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "print report")
	}

	s := report.Summarize(analyses)
	c.Logger.Infof("Reported %d systems, %d strengths", s.Systems, s.Strengths)
	return nil
}

// filterSystems keeps the analyses named in names, in input order.
func filterSystems(analyses []report.Analysis, names []string) ([]report.Analysis, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []report.Analysis
	for _, a := range analyses {
		if want[a.Name] {
			out = append(out, a)
			delete(want, a.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown system: %s", n)
		}
	}
	return out, nil
}

func (c *CLI) pickSystems(ctx context.Context, analyses []report.Analysis) ([]report.Analysis, error) {
	p := tea.NewProgram(NewSystemListModel(analyses), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(SystemListModel)
	if !ok {
		return nil, nil
	}
	return fm.Selected, nil
}
