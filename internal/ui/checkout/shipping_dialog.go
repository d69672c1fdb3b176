package checkout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/keys"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/theme"
)

// ShippingDialog is the choose-shipping dialog. The option list is fixed
// at construction; only the cursor is local state.
type ShippingDialog struct {
	options []model.ShippingType
	cursor  int
	keys    *keys.KeyMap
}

// NewShippingDialog creates the dialog over a copy of options.
func NewShippingDialog(options []model.ShippingType, k *keys.KeyMap) ShippingDialog {
	return ShippingDialog{
		options: append([]model.ShippingType(nil), options...),
		keys:    k,
	}
}

// Options returns the options in display order.
func (d ShippingDialog) Options() []model.ShippingType {
	return append([]model.ShippingType(nil), d.options...)
}

// Open puts the cursor on selected, or on the first row if it is not
// listed.
func (d ShippingDialog) Open(selected model.ShippingType) ShippingDialog {
	d.cursor = 0
	for i, opt := range d.options {
		if opt == selected {
			d.cursor = i
			break
		}
	}
	return d
}

// Update moves the cursor and turns enter and esc into events.
func (d ShippingDialog) Update(msg tea.KeyMsg) (ShippingDialog, []Event) {
	switch {
	case key.Matches(msg, d.keys.Down):
		if len(d.options) > 0 {
			d.cursor = (d.cursor + 1) % len(d.options)
		}
	case key.Matches(msg, d.keys.Up):
		if len(d.options) > 0 {
			d.cursor--
			if d.cursor < 0 {
				d.cursor = len(d.options) - 1
			}
		}
	case key.Matches(msg, d.keys.Select):
		if len(d.options) == 0 {
			return d, nil
		}
		return d, []Event{
			UpdateSelectedShipping{ShippingType: d.options[d.cursor]},
			UpdateSelectShippingDialogState{Value: model.Hide},
		}
	case key.Matches(msg, d.keys.Back):
		return d, []Event{UpdateSelectShippingDialogState{Value: model.Hide}}
	}
	return d, nil
}

// View renders the dialog. A row is checked when it equals the selected
// shipping, wherever it sits in the list.
func (d ShippingDialog) View(st State, width int) string {
	var rows []string
	for i, opt := range d.options {
		check := "[ ]"
		if opt == st.SelectedShipping {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-10s %s  %s",
			check,
			opt.Title,
			theme.DimmedStyle.Render(fmt.Sprintf("Estimated arrival in %d days", opt.ArrivalDay)),
			theme.PriceStyle.Render(formatPrice(opt.Price)),
		)
		if i == d.cursor {
			rows = append(rows, theme.SelectedItemStyle.Render(line))
		} else {
			rows = append(rows, theme.ListItemStyle.Render(line))
		}
	}

	w := width * 2 / 3
	if w < 50 {
		w = 50
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Width(w-6).Align(lipgloss.Center).Render("Choose Shipping"),
		strings.Join(rows, "\n"),
		"",
		theme.HelpStyle.Render("j/k: move  enter: choose  esc: close"),
	)
	return theme.DialogStyle.Width(w).Render(body)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}
