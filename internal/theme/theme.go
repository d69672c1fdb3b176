package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	ColorAccent  = ColorBlue
)

// Styles. Rebuilt by Apply.
var (
	// HeaderStyle is used for the application title bar.
	HeaderStyle lipgloss.Style
	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style
	// PanelStyle wraps a screen's content area.
	PanelStyle lipgloss.Style
	// DialogStyle frames modal dialogs.
	DialogStyle lipgloss.Style
	// ErrorDialogStyle frames queued error notifications.
	ErrorDialogStyle lipgloss.Style
	// TitleStyle is used for dialog and section titles.
	TitleStyle lipgloss.Style
	// ListItemStyle is the base style for items in a list.
	ListItemStyle lipgloss.Style
	// SelectedItemStyle highlights the currently focused list item.
	SelectedItemStyle lipgloss.Style
	// HelpStyle is used for keyboard shortcut hints and help text.
	HelpStyle lipgloss.Style
	// DimmedStyle is used for secondary text such as dates.
	DimmedStyle lipgloss.Style
	// PriceStyle renders money amounts.
	PriceStyle lipgloss.Style
	// BannerStyle is the network failure banner.
	BannerStyle lipgloss.Style
)

func init() {
	Apply("default")
}

// Apply switches the palette by name and rebuilds every style. Unknown
// names fall back to "default".
func Apply(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono":
		ColorAccent = ColorWhite
	default:
		ColorAccent = ColorBlue
	}

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(1, 2)

	DialogStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent)

	ErrorDialogStyle = DialogStyle.
		BorderForeground(ColorRed)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		MarginBottom(1)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorAccent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(ColorGray)

	PriceStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorGreen)

	BannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorRed).
		Padding(0, 1)
}

// RatingStyle returns a color-coded style for a 1-5 rating.
func RatingStyle(rate float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case rate >= 4.5:
		return base.Foreground(ColorGreen)
	case rate >= 3.5:
		return base.Foreground(ColorBlue)
	case rate >= 2.5:
		return base.Foreground(ColorYellow)
	case rate >= 1.5:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorRed)
	}
}

// NetworkStyle returns the header style for a network state label.
func NetworkStyle(failed bool) lipgloss.Style {
	base := HeaderStyle

	if failed {
		return base.Foreground(ColorRed)
	}
	return base.Foreground(ColorGreen)
}
