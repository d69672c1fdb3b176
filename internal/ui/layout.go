package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/theme"
)

// Frame is the terminal area split into a one-line tab bar, the screen
// body and a one-line key hint bar.
type Frame struct {
	Width  int
	Height int
}

// NewFrame creates a Frame for a terminal of the given size.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height}
}

// BodyWidth is the width a screen may draw in.
func (f Frame) BodyWidth() int {
	return f.Width
}

// BodyHeight is the height left for a screen between the two bars.
func (f Frame) BodyHeight() int {
	return max(f.Height-2, 0)
}

// TabBar renders the shop title and the screen tabs with the active one
// bracketed, followed by the network label flush right.
func (f Frame) TabBar(tabs []string, active int, network string) string {
	labels := make([]string, len(tabs))
	for i, t := range tabs {
		if i == active {
			labels[i] = "[" + t + "]"
		} else {
			labels[i] = " " + t + " "
		}
	}
	left := theme.HeaderStyle.Render("Shop  " + strings.Join(labels, "|"))
	return fill(left, network, f.Width, theme.HeaderStyle)
}

// HintBar renders the key hints across the bottom line.
func (f Frame) HintBar(hints string) string {
	return fill(theme.StatusBarStyle.Render(hints), "", f.Width, theme.StatusBarStyle)
}

// Compose stacks the bars around body, padding body so the hint bar stays
// on the last line.
func (f Frame) Compose(tabBar, body, hintBar string) string {
	body = lipgloss.NewStyle().Height(f.BodyHeight()).MaxHeight(f.BodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, body, hintBar)
}

// fill joins left and right with a background-coloured gap spanning width.
func fill(left, right string, width int, bar lipgloss.Style) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().Width(gap).Background(bar.GetBackground()).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

// Overlay centers a dialog in a box of the given size.
func Overlay(width, height int, dialog string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
