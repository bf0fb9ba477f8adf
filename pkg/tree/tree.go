package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned by [New] when a node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [New] when two nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownCategory is returned by [New] when a node's category is not
	// one of [Categories].
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNegativeLevel is returned by [New] when a node has a level below zero.
	ErrNegativeLevel = errors.New("level must not be negative")

	// ErrUnknownParent is returned by [Tree.Validate] (and by layout) when a
	// node's parent does not name a node in the tree.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrNonConsecutiveLevel is returned by [Tree.Validate] when a child's
	// level is not exactly one greater than its parent's.
	ErrNonConsecutiveLevel = errors.New("child level must be parent level + 1")
)

// Category tags a node for colouring and legend grouping.
type Category string

const (
	CategoryRoot      Category = "root"
	CategoryConfig    Category = "config"
	CategoryProcess   Category = "process"
	CategoryActions   Category = "actions"
	CategoryTemplates Category = "templates"
	CategoryContext   Category = "context"
	CategoryUtilities Category = "utilities"
)

// Categories lists every valid category in legend order.
var Categories = []Category{
	CategoryRoot,
	CategoryConfig,
	CategoryProcess,
	CategoryActions,
	CategoryTemplates,
	CategoryContext,
	CategoryUtilities,
}

// Valid reports whether c is one of [Categories].
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the category name with its first letter upper-cased,
// as shown in the diagram legend.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := []byte(c)
	if s[0] >= 'a' && s[0] <= 'z' {
		s[0] -= 'a' - 'A'
	}
	return string(s)
}

// Node is a single entry in the hierarchy.
type Node struct {
	ID       string   `toml:"id" json:"id" yaml:"id"`
	Label    string   `toml:"label" json:"label" yaml:"label"`
	Level    int      `toml:"level" json:"level" yaml:"level"`
	Category Category `toml:"category" json:"category" yaml:"category"`
	Parent   string   `toml:"parent,omitempty" json:"parent,omitempty" yaml:"parent,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool { return n.Parent == "" }

// DisplayLabel returns Label, falling back to ID when the label is empty.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects a parent to one of its children.
type Edge struct {
	From string // parent ID
	To   string // child ID
}

// Tree is an ordered, read-only set of nodes.
// The zero value is an empty tree; use [New] to build a populated one.
type Tree struct {
	nodes    []Node
	index    map[string]int
	children map[string][]string
}

// New builds a tree from nodes, preserving their order.
// The slice is copied; later changes to it do not affect the tree.
func New(nodes []Node) (*Tree, error) {
	t := &Tree{
		nodes:    make([]Node, 0, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := t.index[n.ID]; exists {
			return nil, fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNodeID)
		}
		if !n.Category.Valid() {
			return nil, fmt.Errorf("node %s: %w: %q", n.ID, ErrUnknownCategory, n.Category)
		}
		if n.Level < 0 {
			return nil, fmt.Errorf("node %s: %w", n.ID, ErrNegativeLevel)
		}
		t.index[n.ID] = len(t.nodes)
		t.nodes = append(t.nodes, n)
		if !n.IsRoot() {
			t.children[n.Parent] = append(t.children[n.Parent], n.ID)
		}
	}
	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Nodes returns a copy of all nodes in insertion order.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (Node, bool) {
	i, ok := t.index[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// Children returns the IDs of nodes whose parent is id, in insertion order.
func (t *Tree) Children(id string) []string {
	return append([]string(nil), t.children[id]...)
}

// Roots returns all parentless nodes in insertion order.
func (t *Tree) Roots() []Node {
	var roots []Node
	for _, n := range t.nodes {
		if n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// Edges returns one parent→child edge per non-root node, in insertion order.
// Dangling parents are included as-is; call [Tree.Validate] to catch them.
func (t *Tree) Edges() []Edge {
	var edges []Edge
	for _, n := range t.nodes {
		if !n.IsRoot() {
			edges = append(edges, Edge{From: n.Parent, To: n.ID})
		}
	}
	return edges
}

// Levels returns the number of distinct depths, i.e. the maximum level + 1.
// An empty tree has zero levels.
func (t *Tree) Levels() int {
	if len(t.nodes) == 0 {
		return 0
	}
	max := 0
	for _, n := range t.nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max + 1
}

// NodesAtLevel returns the nodes at the given depth in insertion order.
func (t *Tree) NodesAtLevel(level int) []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks cross-node constraints: every parent must resolve, and
// every child must sit exactly one level below its parent.
func (t *Tree) Validate() error {
	for _, n := range t.nodes {
		if n.IsRoot() {
			continue
		}
		p, ok := t.Node(n.Parent)
		if !ok {
			return fmt.Errorf("node %s: %w %q", n.ID, ErrUnknownParent, n.Parent)
		}
		if n.Level != p.Level+1 {
			return fmt.Errorf("node %s (level %d) under %s (level %d): %w",
				n.ID, n.Level, p.ID, p.Level, ErrNonConsecutiveLevel)
		}
	}
	return nil
}
