package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/structviz/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// listKeyMap holds the key bindings of the system list.
type listKeyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Enter  key.Binding
}

var listKeys = listKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "print"),
	),
}

// help renders the bindings as a one-line hint.
func (k listKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Toggle, k.All, k.Enter, k.Quit}
	parts := make([]string, 0, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		if i == 0 {
			h.Key = k.Up.Help().Key + "/" + k.Down.Help().Key
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// SystemListModel - Interactive analysis selection
// =============================================================================

// SystemListModel is the bubbletea model for choosing which analyses to print.
// Space toggles the system under the cursor; enter confirms. Confirming with
// nothing toggled selects the system under the cursor.
type SystemListModel struct {
	Systems  []report.Analysis
	Cursor   int
	Marked   map[int]bool
	Selected []report.Analysis
	Height   int
	Offset   int
}

// NewSystemListModel creates a new system list model.
func NewSystemListModel(systems []report.Analysis) SystemListModel {
	return SystemListModel{
		Systems: systems,
		Marked:  make(map[int]bool),
		Height:  10,
	}
}

func (m SystemListModel) Init() tea.Cmd {
	return nil
}

func (m SystemListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, listKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, listKeys.Up):
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case key.Matches(msg, listKeys.Down):
			if m.Cursor < len(m.Systems)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case key.Matches(msg, listKeys.Toggle):
			if len(m.Systems) > 0 {
				m.Marked[m.Cursor] = !m.Marked[m.Cursor]
			}
		case key.Matches(msg, listKeys.All):
			all := len(m.marked()) < len(m.Systems)
			for i := range m.Systems {
				m.Marked[i] = all
			}
		case key.Matches(msg, listKeys.Enter):
			if len(m.Systems) == 0 {
				return m, tea.Quit
			}
			idx := m.marked()
			if len(idx) == 0 {
				idx = []int{m.Cursor}
			}
			m.Selected = make([]report.Analysis, len(idx))
			for i, j := range idx {
				m.Selected[i] = m.Systems[j]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

// marked returns the toggled indices in list order.
func (m SystemListModel) marked() []int {
	var idx []int
	for i := range m.Systems {
		if m.Marked[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m SystemListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Systems"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(listKeys.help()))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Systems))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		a := m.Systems[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Marked[i] {
			mark = "[x]"
		}
		org, ok := a.Organization()
		if !ok {
			org = "—"
		}
		rows = append(rows, []string{cursor + mark, a.Name, strconv.Itoa(len(a.Strengths)), org})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "System", "Strengths", "Organization").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Systems))))

	return b.String()
}
