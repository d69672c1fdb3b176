package help

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/keys"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys    *keys.KeyMap
	help    help.Model
	backend string
	network model.NetworkState
	checked time.Time
	width   int
	height  int
}

// New creates a new help view model. backend describes where data comes
// from and is shown under the shortcuts.
func New(keys *keys.KeyMap, backend string, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:    keys,
		help:    h,
		backend: backend,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.TitleStyle.Render("Keyboard Shortcuts")

	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		helpText,
		"",
		theme.DimmedStyle.Render(fmt.Sprintf("Backend: %s", m.backend)),
		theme.DimmedStyle.Render(m.connectionLine()),
	)

	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return theme.DialogStyle.Width(w).Render(content)
}

// SetConnection records the last health probe result.
func (m *Model) SetConnection(state model.NetworkState, checked time.Time) {
	m.network = state
	m.checked = checked
}

func (m Model) connectionLine() string {
	if m.checked.IsZero() {
		return "Connection: not checked yet"
	}
	label := "online"
	if m.network == model.NetworkFailed {
		label = "offline"
	}
	return fmt.Sprintf("Connection: %s, checked %s", label, m.checked.Format("15:04:05"))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 8
}
