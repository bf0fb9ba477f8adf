// Package layout computes deterministic 2D positions for a [tree.Tree].
//
// The root sits at the origin. Every other node is centred under its parent
// and spread horizontally among its siblings; each level sits a fixed step
// below the previous one. Positions depend only on levels and sibling order,
// so the same tree always yields the same coordinates.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/structviz/pkg/tree"
)

var (
	// ErrNoRoot is returned by [Compute] when the tree has no parentless node.
	ErrNoRoot = errors.New("tree has no root")

	// ErrMultipleRoots is returned by [Compute] when more than one node lacks a parent.
	ErrMultipleRoots = errors.New("tree has more than one root")

	// ErrUnknownParent is returned by [Compute] when a node's parent is not in
	// the tree. It wraps [tree.ErrUnknownParent].
	ErrUnknownParent = fmt.Errorf("layout: %w", tree.ErrUnknownParent)

	// ErrParentNotPlaced is returned by [Compute] when a parent exists but sits
	// at the same or a deeper level than its child.
	ErrParentNotPlaced = errors.New("parent not placed before child")

	// ErrInvalidOptions is returned by [Options.Validate].
	ErrInvalidOptions = errors.New("invalid layout options")
)

// Point is a position in layout space. Y grows upward, so deeper levels
// have smaller Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node IDs to their computed coordinates.
// It is built once by [Compute] and treated as read-only afterwards.
type Positions map[string]Point

// Bounds returns the smallest rectangle containing every position.
// An empty map yields the zero rectangle.
func (p Positions) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pt := range p {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}

// IDs returns the node IDs sorted alphabetically.
func (p Positions) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LevelSpec controls placement of the nodes at one depth.
type LevelSpec struct {
	Spacing float64 // horizontal distance between adjacent siblings
	Step    float64 // vertical drop from the parent, must be positive
}

// Options configures [Compute].
type Options struct {
	// Levels holds the spec for level 1, 2, ... in order. Levels deeper
	// than the slice reuse the last entry.
	Levels []LevelSpec
}

// DefaultOptions returns the spacing used for the directory-structure diagram.
func DefaultOptions() Options {
	return Options{Levels: []LevelSpec{
		{Spacing: 4.5, Step: 3.5},
		{Spacing: 1.8, Step: 3.5},
		{Spacing: 1.5, Step: 3.0},
	}}
}

// Validate reports an error if any level spec has a non-positive spacing or step.
func (o Options) Validate() error {
	if len(o.Levels) == 0 {
		return fmt.Errorf("%w: no level specs", ErrInvalidOptions)
	}
	for i, l := range o.Levels {
		if l.Spacing <= 0 {
			return fmt.Errorf("%w: level %d spacing %v must be positive", ErrInvalidOptions, i+1, l.Spacing)
		}
		if l.Step <= 0 {
			return fmt.Errorf("%w: level %d step %v must be positive", ErrInvalidOptions, i+1, l.Step)
		}
	}
	return nil
}

// spec returns the spec for the given level (>= 1).
func (o Options) spec(level int) LevelSpec {
	i := level - 1
	if i >= len(o.Levels) {
		i = len(o.Levels) - 1
	}
	if i < 0 {
		i = 0
	}
	return o.Levels[i]
}

// SiblingOffset returns the horizontal offset of sibling i among n siblings
// spaced s apart. A single sibling has offset 0; larger groups are
// symmetric around 0.
func SiblingOffset(i, n int, s float64) float64 {
	if n <= 1 {
		return 0
	}
	start := -float64(n-1) * s / 2
	return start + float64(i)*s
}

// Compute assigns a position to every node in t.
//
// Nodes are placed level by level in insertion order. A node whose parent
// is missing from the tree fails with [ErrUnknownParent]; it is never
// defaulted to the origin.
func Compute(t *tree.Tree, opts Options) (Positions, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	roots := t.Roots()
	switch {
	case len(roots) == 0:
		return nil, ErrNoRoot
	case len(roots) > 1:
		return nil, fmt.Errorf("%w: %s and %s", ErrMultipleRoots, roots[0].ID, roots[1].ID)
	}

	nodes := t.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Level < nodes[j].Level })

	pos := make(Positions, len(nodes))
	pos[roots[0].ID] = Point{}

	for _, n := range nodes {
		if n.IsRoot() {
			continue
		}
		parent, ok := t.Node(n.Parent)
		if !ok {
			return nil, fmt.Errorf("node %s: %w %q", n.ID, ErrUnknownParent, n.Parent)
		}
		pp, placed := pos[parent.ID]
		if !placed || parent.Level >= n.Level {
			return nil, fmt.Errorf("node %s (level %d) under %s (level %d): %w",
				n.ID, n.Level, parent.ID, parent.Level, ErrParentNotPlaced)
		}

		siblings := siblingsAtLevel(t, n)
		idx := indexOf(siblings, n.ID)
		spec := opts.spec(n.Level)

		pos[n.ID] = Point{
			X: pp.X + SiblingOffset(idx, len(siblings), spec.Spacing),
			Y: pp.Y - spec.Step,
		}
	}
	return pos, nil
}

// siblingsAtLevel returns the children of n's parent that share n's level.
func siblingsAtLevel(t *tree.Tree, n tree.Node) []string {
	var out []string
	for _, id := range t.Children(n.Parent) {
		if c, _ := t.Node(id); c.Level == n.Level {
			out = append(out, id)
		}
	}
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
