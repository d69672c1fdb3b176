package comment

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/model"
)

// Event is a user or system intent submitted to the ViewModel. The set is
// closed: only the types below implement it.
type Event interface {
	dispatch(h eventHandler) tea.Cmd
}

// eventHandler has exactly one method per Event type.
type eventHandler interface {
	addComment(ev AddComment) tea.Cmd
	updateAddCommentDialogState(ev UpdateAddCommentDialogState) tea.Cmd
	getComments() tea.Cmd
	updateProductID(ev UpdateProductID) tea.Cmd
	removeHeadFromQueue() tea.Cmd
	appendError(ev Error) tea.Cmd
	retryNetwork() tea.Cmd
	updateNetworkState(ev UpdateNetworkState) tea.Cmd
}

// AddComment posts a comment for the current product.
type AddComment struct {
	Comment string
	Rate    float64
}

// UpdateAddCommentDialogState shows or hides the add-comment dialog.
type UpdateAddCommentDialogState struct {
	Value model.UIComponentState
}

// GetComments reloads the comments of the current product.
type GetComments struct{}

// UpdateProductID changes the product the screen is about.
type UpdateProductID struct {
	ID int
}

// RemoveHeadFromQueue dismisses the notification being shown.
type RemoveHeadFromQueue struct{}

// Error queues a notification for display.
type Error struct {
	UIComponent model.UIComponent
}

// RetryNetwork re-issues the comment fetch.
type RetryNetwork struct{}

// UpdateNetworkState records observed connectivity.
type UpdateNetworkState struct {
	State model.NetworkState
}

func (ev AddComment) dispatch(h eventHandler) tea.Cmd { return h.addComment(ev) }

func (ev UpdateAddCommentDialogState) dispatch(h eventHandler) tea.Cmd {
	return h.updateAddCommentDialogState(ev)
}

func (GetComments) dispatch(h eventHandler) tea.Cmd { return h.getComments() }

func (ev UpdateProductID) dispatch(h eventHandler) tea.Cmd { return h.updateProductID(ev) }

func (RemoveHeadFromQueue) dispatch(h eventHandler) tea.Cmd { return h.removeHeadFromQueue() }

func (ev Error) dispatch(h eventHandler) tea.Cmd { return h.appendError(ev) }

func (RetryNetwork) dispatch(h eventHandler) tea.Cmd { return h.retryNetwork() }

func (ev UpdateNetworkState) dispatch(h eventHandler) tea.Cmd { return h.updateNetworkState(ev) }
