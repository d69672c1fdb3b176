package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/theme"
)

// RenderNotification renders the notification at the head of an error
// queue. Toasts render as a single banner line.
func RenderNotification(c model.UIComponent, width int) string {
	if c.Kind == model.ComponentToast {
		return theme.BannerStyle.Render(c.Message)
	}

	title := c.Title
	if title == "" {
		title = "Error"
	}
	w := width * 2 / 3
	if w < 30 {
		w = 30
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Foreground(theme.ColorRed).Render(title),
		lipgloss.NewStyle().Width(w-6).Render(c.Message),
		"",
		theme.HelpStyle.Render("enter/esc: dismiss"),
	)
	return theme.ErrorDialogStyle.Width(w).Render(body)
}

// RenderNetworkBanner renders the retry hint shown while the network is
// down.
func RenderNetworkBanner() string {
	return theme.BannerStyle.Render("No connection to the shop. Press r to retry.")
}
