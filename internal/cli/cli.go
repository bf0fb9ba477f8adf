// Package cli implements the structviz command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/buildinfo"
	"github.com/matzehuels/structviz/pkg/dataset"
	"github.com/matzehuels/structviz/pkg/report"
	"github.com/matzehuels/structviz/pkg/tree"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "structviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output (reports, tables, status lines).
	Out io.Writer
}

// New creates a new CLI instance logging to w. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "structviz draws directory structures and prints system analyses",
		Long:         `structviz lays out a hierarchical directory structure, renders it as a PNG diagram (or Graphviz SVG/DOT), and prints text summaries of system analyses.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Input Helpers
// =============================================================================

// loadTree reads the tree at path, or the built-in sample when path is empty.
func (c *CLI) loadTree(path string) (*tree.Tree, error) {
	if path == "" {
		c.Logger.Debug("Using built-in sample structure")
		return dataset.SampleTree()
	}
	c.Logger.Debugf("Reading structure from %s", path)
	return dataset.ImportTree(path)
}

// loadAnalyses reads the analyses at path, or the built-in sample when path is empty.
func (c *CLI) loadAnalyses(path string) ([]report.Analysis, error) {
	if path == "" {
		c.Logger.Debug("Using built-in sample analyses")
		return dataset.SampleAnalyses()
	}
	c.Logger.Debugf("Reading analyses from %s", path)
	return dataset.ImportAnalyses(path)
}
