package tree

import (
	"errors"
	"slices"
	"testing"
)

func sampleNodes() []Node {
	return []Node{
		{ID: "project", Label: "project/", Level: 0, Category: CategoryRoot},
		{ID: "claude", Label: ".claude/", Level: 1, Category: CategoryConfig, Parent: "project"},
		{ID: "memory", Label: "memory/", Level: 1, Category: CategoryContext, Parent: "project"},
		{ID: "sessions", Label: "sessions/", Level: 2, Category: CategoryContext, Parent: "memory"},
		{ID: "knowledge", Label: "knowledge/", Level: 2, Category: CategoryContext, Parent: "memory"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{"valid", sampleNodes(), nil},
		{"empty", nil, nil},
		{"empty id", []Node{{Category: CategoryRoot}}, ErrInvalidNodeID},
		{"duplicate id", []Node{{ID: "a", Category: CategoryRoot}, {ID: "a", Category: CategoryRoot}}, ErrDuplicateNodeID},
		{"unknown category", []Node{{ID: "a", Category: "misc"}}, ErrUnknownCategory},
		{"negative level", []Node{{ID: "a", Level: -1, Category: CategoryRoot}}, ErrNegativeLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAllowsDanglingParent(t *testing.T) {
	tr, err := New([]Node{{ID: "orphan", Level: 1, Category: CategoryConfig, Parent: "ghost"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tr.Validate(); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("Validate() error = %v, want ErrUnknownParent", err)
	}
}

func TestTreeAccessors(t *testing.T) {
	tr, err := New(sampleNodes())
	if err != nil {
		t.Fatal(err)
	}

	if tr.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tr.Len())
	}
	if tr.Levels() != 3 {
		t.Errorf("Levels() = %d, want 3", tr.Levels())
	}

	got := tr.Children("memory")
	if !slices.Equal(got, []string{"sessions", "knowledge"}) {
		t.Errorf("Children(memory) = %v", got)
	}
	if len(tr.Children("sessions")) != 0 {
		t.Errorf("Children(sessions) should be empty")
	}

	roots := tr.Roots()
	if len(roots) != 1 || roots[0].ID != "project" {
		t.Errorf("Roots() = %v", roots)
	}

	edges := tr.Edges()
	if len(edges) != 4 {
		t.Fatalf("Edges() len = %d, want 4", len(edges))
	}
	if edges[0] != (Edge{From: "project", To: "claude"}) {
		t.Errorf("Edges()[0] = %v", edges[0])
	}

	if n, ok := tr.Node("claude"); !ok || n.Label != ".claude/" {
		t.Errorf("Node(claude) = %v, %v", n, ok)
	}
	if _, ok := tr.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}

	if lvl := tr.NodesAtLevel(2); len(lvl) != 2 || lvl[0].ID != "sessions" {
		t.Errorf("NodesAtLevel(2) = %v", lvl)
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	tr, _ := New(sampleNodes())
	nodes := tr.Nodes()
	nodes[0].Label = "changed"
	if n, _ := tr.Node("project"); n.Label != "project/" {
		t.Errorf("tree mutated through Nodes(): %q", n.Label)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{"consecutive", sampleNodes(), nil},
		{"skipped level", []Node{
			{ID: "r", Category: CategoryRoot},
			{ID: "c", Level: 2, Category: CategoryConfig, Parent: "r"},
		}, ErrNonConsecutiveLevel},
		{"dangling", []Node{
			{ID: "r", Category: CategoryRoot},
			{ID: "c", Level: 1, Category: CategoryConfig, Parent: "x"},
		}, ErrUnknownParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.nodes)
			if err != nil {
				t.Fatal(err)
			}
			err = tr.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	if !CategoryUtilities.Valid() {
		t.Error("utilities should be valid")
	}
	if Category("other").Valid() {
		t.Error("other should be invalid")
	}
	if got := CategoryTemplates.Title(); got != "Templates" {
		t.Errorf("Title() = %q, want Templates", got)
	}
	if got := Category("").Title(); got != "" {
		t.Errorf("empty Title() = %q", got)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "x"}).DisplayLabel(); got != "x" {
		t.Errorf("DisplayLabel() = %q, want x", got)
	}
	if got := (Node{ID: "x", Label: "x/"}).DisplayLabel(); got != "x/" {
		t.Errorf("DisplayLabel() = %q, want x/", got)
	}
}
