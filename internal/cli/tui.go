package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/linkage"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// MethodListModel is the bubbletea model for choosing a linkage method.
type MethodListModel struct {
	Methods  []linkage.Method
	Cursor   int
	Selected *linkage.Method
}

// NewMethodListModel creates a method list with the cursor on the first entry.
func NewMethodListModel(methods []linkage.Method) MethodListModel {
	return MethodListModel{Methods: methods}
}

func (m MethodListModel) Init() tea.Cmd {
	return nil
}

func (m MethodListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Methods)-1 {
			m.Cursor++
		}
	case "1", "2":
		i := int(key.Runes[0] - '1')
		if i < len(m.Methods) {
			m.Cursor = i
			return m.choose()
		}
	case "enter":
		return m.choose()
	}
	return m, nil
}

func (m MethodListModel) choose() (tea.Model, tea.Cmd) {
	if len(m.Methods) == 0 {
		return m, tea.Quit
	}
	sel := m.Methods[m.Cursor]
	m.Selected = &sel
	return m, tea.Quit
}

func (m MethodListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Linkage Method"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, method := range m.Methods {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, method.Describe())
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickMethod runs the interactive method picker.
func pickMethod() (linkage.Method, error) {
	final, err := tea.NewProgram(NewMethodListModel(linkage.Methods)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "method picker")
	}
	if m, ok := final.(MethodListModel); ok && m.Selected != nil {
		return *m.Selected, nil
	}
	return "", errors.New(errors.ErrCodeCancelled, "no linkage method selected")
}
