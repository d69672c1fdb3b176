package app

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/interactor"
	"github.com/pankaj1920/shop/internal/keys"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/netwatch"
	"github.com/pankaj1920/shop/internal/prefs"
	"github.com/pankaj1920/shop/internal/theme"
	"github.com/pankaj1920/shop/internal/ui"
	"github.com/pankaj1920/shop/internal/ui/checkout"
	"github.com/pankaj1920/shop/internal/ui/command"
	"github.com/pankaj1920/shop/internal/ui/comment"
	helpview "github.com/pankaj1920/shop/internal/ui/help"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewComments ViewState = iota
	ViewCheckout
	ViewHelp
	ViewCommand
)

// Deps is everything the root model is assembled from.
type Deps struct {
	Repository interactor.Repository
	Backend    string
	Shipping   []model.ShippingType
	ProductID  int
	Prefs      prefs.Prefs
	PrefsPath  string
	// Watcher is optional; without it the network state only changes
	// when a request fails.
	Watcher *netwatch.Watcher
}

type prefsSavedMsg struct{ err error }

// Model is the root Bubble Tea model. It routes keys to the active
// screen and stream results to both screens.
type Model struct {
	currentView  ViewState
	previousView ViewState
	frame        ui.Frame
	keys         *keys.KeyMap
	comments     comment.Model
	checkout     checkout.Model
	helpView     helpview.Model
	commandView  command.Model
	watcher      *netwatch.Watcher
	prefs        prefs.Prefs
	prefsPath    string
	ready        bool
}

// New creates the root model. Stream lifetimes are bounded by ctx.
func New(ctx context.Context, d Deps) Model {
	k := keys.DefaultKeyMap()

	shipping := d.Shipping
	if len(shipping) == 0 {
		shipping = model.DefaultShippingTypes()
	}
	selected, _ := model.FindShipping(shipping, d.Prefs.ShippingID)

	productID := d.ProductID
	if productID <= 0 {
		productID = d.Prefs.LastProductID
	}

	commentVM := comment.NewViewModel(ctx,
		interactor.NewGetComments(d.Repository),
		interactor.NewAddComment(d.Repository),
	)
	checkoutVM := checkout.NewViewModel(ctx,
		interactor.NewGetBasket(d.Repository),
		interactor.NewBuyProduct(d.Repository),
		interactor.NewAddToBasket(d.Repository),
		selected,
	)

	p := d.Prefs
	p.LastProductID = productID

	return Model{
		currentView: ViewComments,
		keys:        k,
		comments:    comment.New(commentVM, productID, k, 80, 24),
		checkout:    checkout.New(checkoutVM, shipping, k, 80, 24),
		helpView:    helpview.New(k, d.Backend, 80, 24),
		commandView: command.New(80, 24),
		watcher:     d.Watcher,
		prefs:       p,
		prefsPath:   d.PrefsPath,
	}
}

// Init loads both screens and starts the network watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.comments.Init(), m.checkout.Init(), m.savePrefs()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.frame = ui.NewFrame(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.frame.BodyWidth()
		contentHeight := m.frame.BodyHeight()
		m.comments.SetSize(contentWidth, contentHeight)
		m.checkout.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		return m, nil

	case netwatch.ChangeMsg:
		cmds := []tea.Cmd{
			m.comments.ViewModel().OnTriggerEvent(comment.UpdateNetworkState{State: msg.State}),
			m.checkout.ViewModel().OnTriggerEvent(checkout.UpdateNetworkState{State: msg.State}),
		}
		if m.watcher != nil {
			m.helpView.SetConnection(msg.State, m.watcher.LastCheck())
			cmds = append(cmds, m.watcher.WaitForNextChange())
		}
		return m, tea.Batch(cmds...)

	case checkout.ShippingChosenMsg:
		m.prefs.ShippingID = msg.Shipping.ID
		return m, m.savePrefs()

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(msg)
		return m, cmd

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			log.Printf("saving prefs: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Stream results and ticks go to both screens; each ignores what it
	// did not start.
	var c1, c2, c3 tea.Cmd
	m.comments, c1 = m.comments.Update(msg)
	m.checkout, c2 = m.checkout.Update(msg)
	if m.currentView == ViewCommand {
		m.commandView, c3 = m.commandView.Update(msg)
	}
	return m, tea.Batch(c1, c2, c3)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.currentView == ViewHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
		}
		return m, nil
	}

	if m.currentView == ViewCommand {
		return m.updateActiveView(msg)
	}

	if !m.activeCapturing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, tea.Batch(m.commandView.Focus(), m.commandView.Init())
		case key.Matches(msg, m.keys.Help):
			if m.watcher != nil {
				m.helpView.SetConnection(m.watcher.State(), m.watcher.LastCheck())
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil
		case key.Matches(msg, m.keys.NextScreen):
			if m.currentView == ViewComments {
				m.currentView = ViewCheckout
			} else {
				m.currentView = ViewComments
			}
			return m, nil
		case key.Matches(msg, m.keys.Retry) && m.watcher != nil:
			m.watcher.Recheck()
		}
	}

	return m.updateActiveView(msg)
}

// activeCapturing reports whether the active screen has a dialog open.
func (m Model) activeCapturing() bool {
	switch m.currentView {
	case ViewComments:
		return m.comments.Capturing()
	case ViewCheckout:
		return m.checkout.Capturing()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewComments:
		m.comments, cmd = m.comments.Update(msg)
	case ViewCheckout:
		m.checkout, cmd = m.checkout.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}
	return m, cmd
}

// executeCommand runs a command palette entry.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Kind {
	case command.KindProduct:
		m.currentView = ViewComments
		m.prefs.LastProductID = c.ProductID
		vm := m.comments.ViewModel()
		return tea.Batch(
			vm.OnTriggerEvent(comment.UpdateProductID{ID: c.ProductID}),
			vm.OnTriggerEvent(comment.GetComments{}),
			m.savePrefs(),
		)
	case command.KindAdd:
		m.currentView = ViewCheckout
		return m.checkout.ViewModel().OnTriggerEvent(checkout.AddToBasket{
			ProductID: c.ProductID,
			Count:     c.Count,
		})
	case command.KindComments:
		m.currentView = ViewComments
	case command.KindCheckout:
		m.currentView = ViewCheckout
	case command.KindRefresh:
		if m.watcher != nil {
			m.watcher.Recheck()
		}
		return tea.Batch(
			m.comments.ViewModel().OnTriggerEvent(comment.GetComments{}),
			m.checkout.ViewModel().OnTriggerEvent(checkout.GetBasket{}),
		)
	case command.KindQuit:
		return m.quit()
	}
	return nil
}

func (m Model) quit() tea.Cmd {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.comments.ViewModel().Close()
	m.checkout.ViewModel().Close()
	return tea.Quit
}

func (m Model) savePrefs() tea.Cmd {
	path := m.prefsPath
	p := m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// View renders the tab bar, the visible screen and the key hints.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	active := 0
	if m.visibleScreen() == ViewCheckout {
		active = 1
	}
	tabBar := m.frame.TabBar([]string{"Comments", "Checkout"}, active, m.networkLabel())
	return m.frame.Compose(tabBar, m.renderContent(), m.frame.HintBar(m.keyHints()))
}

// visibleScreen returns the screen under any overlay.
func (m Model) visibleScreen() ViewState {
	if m.currentView == ViewHelp || m.currentView == ViewCommand {
		return m.previousView
	}
	return m.currentView
}

// networkLabel reflects the state last recorded by the visible screen.
func (m Model) networkLabel() string {
	state := m.comments.ViewModel().State().NetworkState
	if m.visibleScreen() == ViewCheckout {
		state = m.checkout.ViewModel().State().NetworkState
	}
	failed := state == model.NetworkFailed
	label := "online"
	if failed {
		label = "offline"
	}
	return theme.NetworkStyle(failed).Render(label)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewComments:
		return m.comments.View()
	case ViewCheckout:
		return m.checkout.View()
	case ViewHelp:
		return ui.Overlay(m.frame.BodyWidth(), m.frame.BodyHeight(), m.helpView.View())
	case ViewCommand:
		return ui.Overlay(m.frame.BodyWidth(), m.frame.BodyHeight(), m.commandView.View())
	default:
		return ""
	}
}

// keyHints returns the status bar hints for the active view.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewComments:
		return "n: comment  r: retry  tab: checkout  :: command  ?: help  q: quit"
	case ViewCheckout:
		return "s: shipping  b: buy  r: retry  tab: comments  :: command  ?: help  q: quit"
	case ViewHelp:
		return "esc/?: close help"
	case ViewCommand:
		return "enter: run  esc: cancel"
	}
	return ""
}
