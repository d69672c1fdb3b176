package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestFrame_BodyHeight(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{height: 30, want: 28},
		{height: 2, want: 0},
		{height: 1, want: 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NewFrame(80, tt.height).BodyHeight())
	}
}

func TestFrame_TabBarMarksActiveAndSpansWidth(t *testing.T) {
	f := NewFrame(60, 10)

	bar := f.TabBar([]string{"Comments", "Checkout"}, 1, "online")
	require.Contains(t, bar, "[Checkout]")
	require.NotContains(t, bar, "[Comments]")
	require.Contains(t, bar, "online")
	require.Equal(t, 60, lipgloss.Width(bar))
}

func TestFrame_ComposeKeepsHintBarOnLastLine(t *testing.T) {
	f := NewFrame(40, 8)

	out := f.Compose(f.TabBar([]string{"Comments"}, 0, ""), "one\ntwo", f.HintBar("q: quit"))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	require.Contains(t, lines[7], "q: quit")
}
