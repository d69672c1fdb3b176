package comment

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

const logTag = "CommentViewModel"

// Stream keys. Fetches supersede each other; posts never do.
const (
	fetchKey = "comments"
	postKey  = "add-comment"
)

// CommentsFetcher streams the comments of a product.
type CommentsFetcher interface {
	Execute(ctx context.Context, productID int) <-chan core.DataState[[]model.Comment]
}

// CommentPoster streams the outcome of posting a comment.
type CommentPoster interface {
	Execute(ctx context.Context, productID int, rate float64, comment string) <-chan core.DataState[bool]
}

// ViewModel owns the comment screen state. It must only be used from the
// Bubble Tea update loop.
type ViewModel struct {
	state   State
	fetch   CommentsFetcher
	post    CommentPoster
	flights *core.Flights
}

var _ eventHandler = (*ViewModel)(nil)

// NewViewModel creates a ViewModel whose streams live until ctx is done or
// Close is called.
func NewViewModel(ctx context.Context, fetch CommentsFetcher, post CommentPoster) *ViewModel {
	return &ViewModel{
		state:   State{ErrorQueue: core.NewQueue[model.UIComponent]()},
		fetch:   fetch,
		post:    post,
		flights: core.NewFlights(ctx),
	}
}

// State returns the current snapshot.
func (vm *ViewModel) State() State {
	return vm.state
}

// OnTriggerEvent applies ev and returns the command, if any, that carries
// the asynchronous work it started.
func (vm *ViewModel) OnTriggerEvent(ev Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	return ev.dispatch(vm)
}

// Update folds stream results into the state. Messages of other screens
// and of superseded fetches are ignored.
func (vm *ViewModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.FlowMsg[[]model.Comment]:
		return vm.onCommentsState(msg)
	case core.FlowMsg[bool]:
		return vm.onPostState(msg)
	}
	return nil
}

// Close cancels every running stream.
func (vm *ViewModel) Close() {
	vm.flights.Close()
}

func (vm *ViewModel) onCommentsState(msg core.FlowMsg[[]model.Comment]) tea.Cmd {
	if msg.Key != fetchKey || !vm.flights.Current(fetchKey, msg.Seq) {
		return nil
	}
	if msg.Done {
		vm.flights.Finish(msg.Seq)
		return nil
	}

	var cmd tea.Cmd
	switch st := msg.State; st.Kind {
	case core.KindNetworkStatus:
		cmd = vm.OnTriggerEvent(UpdateNetworkState{State: st.NetworkState})
	case core.KindResponse:
		cmd = vm.OnTriggerEvent(Error{UIComponent: st.UIComponent})
	case core.KindData:
		if st.HasData {
			vm.state.Comments = st.Data
		}
	case core.KindLoading:
		vm.state.ProgressBarState = st.ProgressBarState
	}
	return tea.Batch(cmd, msg.Next())
}

func (vm *ViewModel) onPostState(msg core.FlowMsg[bool]) tea.Cmd {
	if msg.Key != postKey || !vm.flights.Current(postKey, msg.Seq) {
		return nil
	}
	if msg.Done {
		vm.flights.Finish(msg.Seq)
		return nil
	}

	var cmd tea.Cmd
	switch st := msg.State; st.Kind {
	case core.KindNetworkStatus:
		cmd = vm.OnTriggerEvent(UpdateNetworkState{State: st.NetworkState})
	case core.KindResponse:
		cmd = vm.OnTriggerEvent(Error{UIComponent: st.UIComponent})
	case core.KindData:
		if st.HasData && st.Data {
			cmd = vm.OnTriggerEvent(GetComments{})
		}
	case core.KindLoading:
		// A running refetch keeps its spinner.
		if st.ProgressBarState != model.ProgressIdle || !vm.flights.Live(fetchKey) {
			vm.state.ProgressBarState = st.ProgressBarState
		}
	}
	return tea.Batch(cmd, msg.Next())
}

func (vm *ViewModel) addComment(ev AddComment) tea.Cmd {
	ctx, seq := vm.flights.Start(postKey)
	ch := vm.post.Execute(ctx, vm.state.ProductID, ev.Rate, ev.Comment)
	return core.Receive(postKey, seq, ch)
}

func (vm *ViewModel) updateAddCommentDialogState(ev UpdateAddCommentDialogState) tea.Cmd {
	vm.state.AddCommentDialogState = ev.Value
	return nil
}

func (vm *ViewModel) getComments() tea.Cmd {
	ctx, seq := vm.flights.Supersede(fetchKey)
	ch := vm.fetch.Execute(ctx, vm.state.ProductID)
	return core.Receive(fetchKey, seq, ch)
}

func (vm *ViewModel) updateProductID(ev UpdateProductID) tea.Cmd {
	vm.state.ProductID = ev.ID
	return nil
}

func (vm *ViewModel) removeHeadFromQueue() tea.Cmd {
	vm.state.ErrorQueue = core.RemoveHeadMessage(logTag, vm.state.ErrorQueue)
	return nil
}

func (vm *ViewModel) appendError(ev Error) tea.Cmd {
	vm.state.ErrorQueue = core.AppendToMessageQueue(logTag, vm.state.ErrorQueue, ev.UIComponent)
	return nil
}

func (vm *ViewModel) retryNetwork() tea.Cmd {
	return vm.OnTriggerEvent(GetComments{})
}

func (vm *ViewModel) updateNetworkState(ev UpdateNetworkState) tea.Cmd {
	vm.state.NetworkState = ev.State
	return nil
}
