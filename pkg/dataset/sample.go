package dataset

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/report"
	"github.com/matzehuels/structviz/pkg/tree"
)

//go:embed sample/structure.toml
var sampleStructure []byte

//go:embed sample/analysis.toml
var sampleAnalysis []byte

// SampleTree returns the built-in directory structure.
func SampleTree() (*tree.Tree, error) {
	t, err := ReadTree(bytes.NewReader(sampleStructure), errors.DataTOML)
	if err != nil {
		return nil, fmt.Errorf("sample structure: %w", err)
	}
	return t, nil
}

// SampleAnalyses returns the built-in system analyses.
func SampleAnalyses() ([]report.Analysis, error) {
	a, err := ReadAnalyses(bytes.NewReader(sampleAnalysis), errors.DataTOML)
	if err != nil {
		return nil, fmt.Errorf("sample analysis: %w", err)
	}
	return a, nil
}
