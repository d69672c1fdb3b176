package checkout

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/model"
)

// Event is a user or system intent submitted to the ViewModel. The set is
// closed: only the types below implement it.
type Event interface {
	dispatch(h eventHandler) tea.Cmd
}

type eventHandler interface {
	getBasket() tea.Cmd
	updateSelectedShipping(ev UpdateSelectedShipping) tea.Cmd
	updateSelectShippingDialogState(ev UpdateSelectShippingDialogState) tea.Cmd
	buyProduct() tea.Cmd
	addToBasket(ev AddToBasket) tea.Cmd
	removeHeadFromQueue() tea.Cmd
	appendError(ev Error) tea.Cmd
	retryNetwork() tea.Cmd
	updateNetworkState(ev UpdateNetworkState) tea.Cmd
}

// GetBasket reloads the basket.
type GetBasket struct{}

// UpdateSelectedShipping chooses a shipping option.
type UpdateSelectedShipping struct {
	ShippingType model.ShippingType
}

// UpdateSelectShippingDialogState shows or hides the shipping dialog.
type UpdateSelectShippingDialogState struct {
	Value model.UIComponentState
}

// BuyProduct orders the basket with the selected shipping.
type BuyProduct struct{}

// AddToBasket adds Count units of a product and reloads the basket.
type AddToBasket struct {
	ProductID int
	Count     int
}

// RemoveHeadFromQueue dismisses the notification being shown.
type RemoveHeadFromQueue struct{}

// Error queues a notification for display.
type Error struct {
	UIComponent model.UIComponent
}

// RetryNetwork re-issues the basket fetch.
type RetryNetwork struct{}

// UpdateNetworkState records observed connectivity.
type UpdateNetworkState struct {
	State model.NetworkState
}

func (GetBasket) dispatch(h eventHandler) tea.Cmd { return h.getBasket() }

func (ev UpdateSelectedShipping) dispatch(h eventHandler) tea.Cmd {
	return h.updateSelectedShipping(ev)
}

func (ev UpdateSelectShippingDialogState) dispatch(h eventHandler) tea.Cmd {
	return h.updateSelectShippingDialogState(ev)
}

func (BuyProduct) dispatch(h eventHandler) tea.Cmd { return h.buyProduct() }

func (ev AddToBasket) dispatch(h eventHandler) tea.Cmd { return h.addToBasket(ev) }

func (RemoveHeadFromQueue) dispatch(h eventHandler) tea.Cmd { return h.removeHeadFromQueue() }

func (ev Error) dispatch(h eventHandler) tea.Cmd { return h.appendError(ev) }

func (RetryNetwork) dispatch(h eventHandler) tea.Cmd { return h.retryNetwork() }

func (ev UpdateNetworkState) dispatch(h eventHandler) tea.Cmd { return h.updateNetworkState(ev) }
