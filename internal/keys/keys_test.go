package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"add comment", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, k.AddComment},
		{"retry", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, k.Retry},
		{"buy", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}, k.Buy},
		{"next screen", tea.KeyMsg{Type: tea.KeyTab}, k.NextScreen},
		{"select", tea.KeyMsg{Type: tea.KeyEnter}, k.Select},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, k.Back},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestFullHelp_CoversShortHelp(t *testing.T) {
	k := DefaultKeyMap()

	all := make(map[string]bool)
	for _, group := range k.FullHelp() {
		for _, b := range group {
			all[b.Help().Key] = true
		}
	}
	for _, b := range k.ShortHelp() {
		require.True(t, all[b.Help().Key], "missing %q in full help", b.Help().Key)
	}
}
