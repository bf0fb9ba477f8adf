// Package dataset loads trees and analyses from TOML, JSON or YAML data files,
// and provides the built-in sample data.
//
// # Tree Files
//
// TOML uses one [[node]] table per node:
//
//	[[node]]
//	id = "memory"
//	label = "memory/"
//	level = 1
//	category = "context"
//	parent = "project"
//
// JSON uses a "nodes" array with the same fields:
//
//	{"nodes": [{"id": "memory", "label": "memory/", "level": 1, "category": "context", "parent": "project"}]}
//
// YAML mirrors the JSON layout under a "nodes" key.
//
// # Analysis Files
//
// TOML uses one [[system]] table per analysis, with a [system.structure]
// sub-table. JSON and YAML use a "systems" list. Order is preserved in all
// three.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/report"
	"github.com/matzehuels/structviz/pkg/tree"
	"github.com/matzehuels/structviz/pkg/tree/layout"
)

type treeFile struct {
	Nodes []tree.Node `toml:"node" json:"nodes" yaml:"nodes"`
}

type analysisFile struct {
	Systems []report.Analysis `toml:"system" json:"systems" yaml:"systems"`
}

// ReadTree decodes a tree in the given data format ("toml", "json" or "yaml").
func ReadTree(r io.Reader, format string) (*tree.Tree, error) {
	var data treeFile
	if err := decode(r, format, &data); err != nil {
		return nil, err
	}
	t, err := tree.New(data.Nodes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build tree")
	}
	return t, nil
}

// ImportTree reads a tree file, picking the format from its extension.
func ImportTree(path string) (*tree.Tree, error) {
	var t *tree.Tree
	err := importFile(path, func(r io.Reader, format string) (err error) {
		t, err = ReadTree(r, format)
		return err
	})
	return t, err
}

// ReadAnalyses decodes analyses in the given data format ("toml", "json" or "yaml").
func ReadAnalyses(r io.Reader, format string) ([]report.Analysis, error) {
	var data analysisFile
	if err := decode(r, format, &data); err != nil {
		return nil, err
	}
	for i, a := range data.Systems {
		if a.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "system %d has no name", i)
		}
		if a.Strengths == nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, report.ErrMissingStrengths, "system %s", a.Name)
		}
	}
	return data.Systems, nil
}

// ImportAnalyses reads an analysis file, picking the format from its extension.
func ImportAnalyses(path string) ([]report.Analysis, error) {
	var out []report.Analysis
	err := importFile(path, func(r io.Reader, format string) (err error) {
		out, err = ReadAnalyses(r, format)
		return err
	})
	return out, err
}

func importFile(path string, read func(io.Reader, string) error) error {
	format, err := errors.DataFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	if err := read(f, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, format string, v any) error {
	switch format {
	case errors.DataTOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		var keys []string
		for _, k := range md.Undecoded() {
			// Structure tables are free-form.
			if len(k) > 2 && k[1] == "structure" {
				continue
			}
			keys = append(keys, k.String())
		}
		if len(keys) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	case errors.DataJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
		return nil
	case errors.DataYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported data format: %s", format)
	}
}

// WriteTreeJSON encodes t in the JSON tree format accepted by [ReadTree].
func WriteTreeJSON(w io.Writer, t *tree.Tree) error {
	return writeJSON(w, treeFile{Nodes: t.Nodes()})
}

// WriteTreeTOML encodes t in the TOML tree format accepted by [ReadTree].
func WriteTreeTOML(w io.Writer, t *tree.Tree) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(treeFile{Nodes: t.Nodes()}); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteTreeYAML encodes t in the YAML tree format accepted by [ReadTree].
func WriteTreeYAML(w io.Writer, t *tree.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(treeFile{Nodes: t.Nodes()}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// PlacedNode is a node together with its computed position.
type PlacedNode struct {
	tree.Node
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Place pairs every node of t with its position, in insertion order.
// Nodes without a position are skipped.
func Place(t *tree.Tree, pos layout.Positions) []PlacedNode {
	out := make([]PlacedNode, 0, t.Len())
	for _, n := range t.Nodes() {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		out = append(out, PlacedNode{Node: n, X: p.X, Y: p.Y})
	}
	return out
}

// WriteLayoutJSON encodes the placed nodes of t as a JSON "nodes" array.
func WriteLayoutJSON(w io.Writer, t *tree.Tree, pos layout.Positions) error {
	return writeJSON(w, struct {
		Nodes []PlacedNode `json:"nodes"`
	}{Nodes: Place(t, pos)})
}
