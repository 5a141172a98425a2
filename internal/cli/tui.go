package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/facade/pkg/plan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxDetailRows bounds the element detail table per floor.
const maxDetailRows = 12

// runFloorBrowser opens the interactive floor browser for a plan.
func runFloorBrowser(p *plan.Plan) error {
	model := NewFloorBrowserModel(p)
	_, err := tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// FloorBrowserModel - Interactive floor browsing
// =============================================================================

// FloorBrowserModel is the bubbletea model for browsing a plan's floors.
type FloorBrowserModel struct {
	Plan   *plan.Plan
	Cursor int
}

// NewFloorBrowserModel creates a new floor browser model.
func NewFloorBrowserModel(p *plan.Plan) FloorBrowserModel {
	return FloorBrowserModel{Plan: p}
}

func (m FloorBrowserModel) Init() tea.Cmd {
	return nil
}

func (m FloorBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j", "right", "l":
			if m.Cursor < m.Plan.FloorCount()-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = m.Plan.FloorCount() - 1
		}
	}
	return m, nil
}

func (m FloorBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Plan " + m.Plan.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ floor  g/G first/last  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Plan.Floors {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%sfloor %d  %s", cursor,
			f.Index,
			fmt.Sprintf("%d doors · %d windows · %d corners", len(f.Doors), len(f.Windows), len(f.Corners)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.floorDetail(m.Plan.Floors[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Plan.FloorCount())))

	return b.String()
}

// floorDetail renders the element table for one floor.
func (m FloorBrowserModel) floorDetail(f plan.Floor) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for _, d := range f.Doors {
		kind := "door"
		if propBool(d.Props, "main_entrance") {
			kind = "door (main)"
		}
		rows = append(rows, []string{
			kind,
			strconv.Itoa(d.EdgeIndex),
			fmt.Sprintf("%.2f m", d.Offset),
			propString(d.Props, "style"),
		})
	}
	for _, w := range f.Windows {
		rows = append(rows, []string{
			"window",
			strconv.Itoa(w.EdgeIndex),
			fmt.Sprintf("%.2f m", w.Offset),
			propString(w.Props, "style"),
		})
	}
	truncated := false
	if len(rows) > maxDetailRows {
		rows = rows[:maxDetailRows]
		truncated = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Element", "Edge", "Offset", "Style").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	out := t.Render()
	if truncated {
		out += "\n" + listDimStyle.Render(fmt.Sprintf("  … %d more", len(f.Doors)+len(f.Windows)-maxDetailRows))
	}
	return out
}

func propString(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return "—"
}

func propBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}
