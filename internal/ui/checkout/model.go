package checkout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pankaj1920/shop/internal/keys"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/theme"
	"github.com/pankaj1920/shop/internal/ui"
)

// ShippingChosenMsg tells the parent which shipping the user picked.
type ShippingChosenMsg struct {
	Shipping model.ShippingType
}

type formBindings struct {
	confirm bool
}

// Model is the Bubble Tea model for the checkout screen.
type Model struct {
	vm          *ViewModel
	keys        *keys.KeyMap
	dialog      ShippingDialog
	spinner     spinner.Model
	confirmForm *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates the checkout screen offering the given shipping options.
func New(vm *ViewModel, options []model.ShippingType, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorAccent)
	return Model{
		vm:      vm,
		keys:    k,
		dialog:  NewShippingDialog(options, k),
		spinner: sp,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init loads the basket.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.vm.OnTriggerEvent(GetBasket{}), m.spinner.Tick)
}

// ViewModel returns the screen's view-model.
func (m Model) ViewModel() *ViewModel {
	return m.vm
}

// Capturing reports whether the screen is consuming all key input.
func (m Model) Capturing() bool {
	st := m.vm.State()
	return m.confirmForm != nil ||
		st.SelectShippingDialogState == model.Show ||
		!st.ErrorQueue.IsEmpty()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if cmd := m.vm.Update(msg); cmd != nil {
		return m, cmd
	}
	return m.updateConfirm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.vm.State()

	if !st.ErrorQueue.IsEmpty() {
		if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Back) {
			return m, m.vm.OnTriggerEvent(RemoveHeadFromQueue{})
		}
		return m, nil
	}

	if st.SelectShippingDialogState == model.Show {
		var events []Event
		m.dialog, events = m.dialog.Update(msg)
		cmds := make([]tea.Cmd, 0, len(events)+1)
		for _, ev := range events {
			cmds = append(cmds, m.vm.OnTriggerEvent(ev))
			if sel, ok := ev.(UpdateSelectedShipping); ok {
				chosen := sel.ShippingType
				cmds = append(cmds, func() tea.Msg { return ShippingChosenMsg{Shipping: chosen} })
			}
		}
		return m, tea.Batch(cmds...)
	}

	if m.confirmForm != nil {
		if key.Matches(msg, m.keys.Back) {
			m.confirmForm = nil
			return m, nil
		}
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ChooseShipping):
		m.dialog = m.dialog.Open(st.SelectedShipping)
		return m, m.vm.OnTriggerEvent(UpdateSelectShippingDialogState{Value: model.Show})

	case key.Matches(msg, m.keys.Buy):
		if st.ProgressBarState.IsLoading() {
			return m, nil
		}
		if st.SelectedShipping.IsZero() {
			// Let the view-model report the missing choice.
			return m, m.vm.OnTriggerEvent(BuyProduct{})
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(st)
		return m, m.confirmForm.Init()

	case key.Matches(msg, m.keys.Retry):
		return m, m.vm.OnTriggerEvent(RetryNetwork{})
	}
	return m, nil
}

func (m Model) buildConfirmForm(st State) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Buy for %s?", formatPrice(st.TotalCost()))).
				Description(fmt.Sprintf("%d item(s), %s shipping.", len(st.Basket), st.SelectedShipping.Title)).
				Affirmative("Buy").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(50)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		m.confirmForm = nil
		if m.fb.confirm {
			return m, m.vm.OnTriggerEvent(BuyProduct{})
		}
		return m, nil
	case huh.StateAborted:
		m.confirmForm = nil
		return m, nil
	}
	return m, cmd
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the screen.
func (m Model) View() string {
	st := m.vm.State()

	if head, ok := st.ErrorQueue.Peek(); ok {
		return ui.Overlay(m.width, m.height, ui.RenderNotification(head, m.width))
	}
	if st.SelectShippingDialogState == model.Show {
		return ui.Overlay(m.width, m.height, m.dialog.View(st, m.width))
	}
	if m.confirmForm != nil {
		return ui.Overlay(m.width, m.height, theme.DialogStyle.Render(m.confirmForm.View()))
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Checkout"))
	b.WriteString("\n")

	if st.NetworkState == model.NetworkFailed {
		b.WriteString(ui.RenderNetworkBanner())
		b.WriteString("\n\n")
	}
	if st.Purchased {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorGreen).Render("Order placed. Thank you!"))
		b.WriteString("\n\n")
	}

	switch st.ProgressBarState {
	case model.ProgressLoading:
		b.WriteString(m.spinner.View() + " Loading basket...\n")
	case model.ProgressButtonLoading:
		b.WriteString(m.spinner.View() + " Updating basket...\n")
	}

	if len(st.Basket) == 0 && !st.ProgressBarState.IsLoading() {
		b.WriteString(theme.HelpStyle.Render("Your basket is empty. Use :add <product> [count] to fill it."))
		b.WriteString("\n")
	}
	for _, item := range st.Basket {
		b.WriteString(theme.ListItemStyle.Render(fmt.Sprintf("%-24s x%-3d %s",
			item.Title, item.Count, theme.PriceStyle.Render(formatPrice(item.Subtotal())))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	shipping := theme.HelpStyle.Render("none (press s to choose)")
	if !st.SelectedShipping.IsZero() {
		shipping = fmt.Sprintf("%s, %d days, %s",
			st.SelectedShipping.Title, st.SelectedShipping.ArrivalDay, formatPrice(st.SelectedShipping.Price))
	}
	b.WriteString(fmt.Sprintf("Subtotal: %s\n", formatPrice(st.TotalBasket)))
	b.WriteString(fmt.Sprintf("Shipping: %s\n", shipping))
	b.WriteString(fmt.Sprintf("Total:    %s\n", theme.PriceStyle.Render(formatPrice(st.TotalCost()))))

	return theme.PanelStyle.Render(b.String())
}
