package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/theme"
)

// Kind names a palette command.
type Kind string

const (
	KindProduct  Kind = "product"
	KindAdd      Kind = "add"
	KindComments Kind = "comments"
	KindCheckout Kind = "checkout"
	KindRefresh  Kind = "refresh"
	KindQuit     Kind = "quit"
)

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg struct {
	Kind      Kind
	ProductID int
	Count     int
}

// CancelMsg is emitted when the palette is closed without a command.
type CancelMsg struct{}

// Parse turns a palette line into a command.
func Parse(line string) (CommandMsg, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandMsg{}, fmt.Errorf("empty command")
	}

	switch k := Kind(strings.ToLower(fields[0])); k {
	case KindProduct:
		if len(fields) != 2 {
			return CommandMsg{}, fmt.Errorf("usage: product <id>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil || id <= 0 {
			return CommandMsg{}, fmt.Errorf("invalid product id %q", fields[1])
		}
		return CommandMsg{Kind: k, ProductID: id}, nil
	case KindAdd:
		if len(fields) < 2 || len(fields) > 3 {
			return CommandMsg{}, fmt.Errorf("usage: add <product> [count]")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil || id <= 0 {
			return CommandMsg{}, fmt.Errorf("invalid product id %q", fields[1])
		}
		count := 1
		if len(fields) == 3 {
			count, err = strconv.Atoi(fields[2])
			if err != nil || count <= 0 {
				return CommandMsg{}, fmt.Errorf("invalid count %q", fields[2])
			}
		}
		return CommandMsg{Kind: k, ProductID: id, Count: count}, nil
	case KindComments, KindCheckout, KindRefresh, KindQuit:
		if len(fields) != 1 {
			return CommandMsg{}, fmt.Errorf("%s takes no arguments", k)
		}
		return CommandMsg{Kind: k}, nil
	default:
		return CommandMsg{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    error
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "product <id> | add <id> [count] | comments | checkout | refresh | quit"
	ti.Prompt = ": "
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			parsed, err := Parse(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.input.Reset()
			m.err = nil
			return m, func() tea.Msg { return parsed }
		case tea.KeyEsc:
			m.input.Reset()
			m.err = nil
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	parts := []string{theme.TitleStyle.Render("Command"), m.input.View()}
	if m.err != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.err.Error()))
	}

	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return theme.DialogStyle.
		Width(w).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 10
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
