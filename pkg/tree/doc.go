// Package tree provides the hierarchical node model rendered by structviz.
//
// # Overview
//
// A [Tree] is an ordered collection of [Node] records describing a
// directory-like hierarchy. Each node carries a nesting level, a display
// label, a [Category] that controls its colour and legend group, and an
// optional parent reference.
//
// Insertion order is significant: it decides sibling order during layout
// and the order in which edges are drawn.
//
// # Basic Usage
//
//	t, err := tree.New([]tree.Node{
//	    {ID: "project", Label: "project/", Category: tree.CategoryRoot},
//	    {ID: "memory", Label: "memory/", Level: 1, Category: tree.CategoryContext, Parent: "project"},
//	})
//
// [New] checks per-node constraints (unique, non-empty IDs, known
// categories, non-negative levels). Cross-node constraints (every parent
// resolves, levels grow by exactly one) are checked by [Tree.Validate] and
// enforced at layout time.
package tree
