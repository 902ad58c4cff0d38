package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cpwdesign/pkg/component"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ComponentListModel - Interactive component selection
// =============================================================================

// ComponentListModel is the bubbletea model for picking a component to
// preview. Components that failed to generate are listed but cannot be
// selected.
type ComponentListModel struct {
	Components []component.Generator
	Cursor     int
	Selected   component.Generator
	Height     int
	Offset     int
}

// NewComponentListModel creates a new component list model.
func NewComponentListModel(cs []component.Generator) ComponentListModel {
	return ComponentListModel{Components: cs, Height: 15}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Components)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Components) == 0 {
				return m, nil
			}
			c := m.Components[m.Cursor]
			if !c.Generated() {
				return m, nil
			}
			m.Selected = c
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ preview  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Components))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Components[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := "✓"
		if !c.Generated() {
			status = "✗"
		}
		rows = append(rows, []string{cursor, c.Name(), c.Kind(), c.Layer(), fmt.Sprintf("%d", len(c.Sections())), status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Component", "Kind", "Layer", "Sections", "OK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Components) {
				return lipgloss.NewStyle()
			}
			c := m.Components[idx]
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor && c.Generated():
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Foreground(colorDim).Bold(true)
			case c.Generated():
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Components))))

	return b.String()
}
