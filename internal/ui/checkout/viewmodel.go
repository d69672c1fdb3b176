package checkout

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

const logTag = "CheckoutViewModel"

const (
	basketKey = "basket"
	buyKey    = "buy"
	addKey    = "add-to-basket"
)

// BasketFetcher streams the basket lines.
type BasketFetcher interface {
	Execute(ctx context.Context) <-chan core.DataState[[]model.BasketItem]
}

// Buyer streams the outcome of placing an order.
type Buyer interface {
	Execute(ctx context.Context, shipping model.ShippingType) <-chan core.DataState[bool]
}

// BasketAdder streams the outcome of adding a product to the basket.
type BasketAdder interface {
	Execute(ctx context.Context, productID, count int) <-chan core.DataState[bool]
}

// ViewModel owns the checkout screen state. It must only be used from the
// Bubble Tea update loop.
type ViewModel struct {
	state   State
	fetch   BasketFetcher
	buy     Buyer
	add     BasketAdder
	flights *core.Flights
}

var _ eventHandler = (*ViewModel)(nil)

// NewViewModel creates a ViewModel with shipping preselected. A zero
// shipping means nothing is selected yet.
func NewViewModel(ctx context.Context, fetch BasketFetcher, buy Buyer, add BasketAdder, shipping model.ShippingType) *ViewModel {
	return &ViewModel{
		state: State{
			SelectedShipping: shipping,
			ErrorQueue:       core.NewQueue[model.UIComponent](),
		},
		fetch:   fetch,
		buy:     buy,
		add:     add,
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
	case core.FlowMsg[[]model.BasketItem]:
		return vm.onBasketState(msg)
	case core.FlowMsg[bool]:
		return vm.onMutationState(msg)
	}
	return nil
}

func (vm *ViewModel) onBasketState(msg core.FlowMsg[[]model.BasketItem]) tea.Cmd {
	if msg.Key != basketKey || !vm.flights.Current(basketKey, msg.Seq) {
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
			vm.state.Basket = st.Data
			vm.state.TotalBasket = model.BasketTotal(st.Data)
		}
	case core.KindLoading:
		vm.state.ProgressBarState = st.ProgressBarState
	}
	return tea.Batch(cmd, msg.Next())
}

// onMutationState folds buy and add-to-basket results. Both reload the
// basket on success.
func (vm *ViewModel) onMutationState(msg core.FlowMsg[bool]) tea.Cmd {
	if (msg.Key != buyKey && msg.Key != addKey) || !vm.flights.Current(msg.Key, msg.Seq) {
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
			if msg.Key == buyKey {
				vm.state.Purchased = true
			}
			cmd = vm.OnTriggerEvent(GetBasket{})
		}
	case core.KindLoading:
		// The reload it triggered owns the progress state until it ends.
		if st.ProgressBarState != model.ProgressIdle || !vm.flights.Live(basketKey) {
			vm.state.ProgressBarState = st.ProgressBarState
		}
	}
	return tea.Batch(cmd, msg.Next())
}

// Close cancels every running stream.
func (vm *ViewModel) Close() {
	vm.flights.Close()
}

func (vm *ViewModel) getBasket() tea.Cmd {
	ctx, seq := vm.flights.Supersede(basketKey)
	return core.Receive(basketKey, seq, vm.fetch.Execute(ctx))
}

func (vm *ViewModel) updateSelectedShipping(ev UpdateSelectedShipping) tea.Cmd {
	vm.state.SelectedShipping = ev.ShippingType
	return nil
}

func (vm *ViewModel) updateSelectShippingDialogState(ev UpdateSelectShippingDialogState) tea.Cmd {
	vm.state.SelectShippingDialogState = ev.Value
	return nil
}

func (vm *ViewModel) buyProduct() tea.Cmd {
	if vm.state.SelectedShipping.IsZero() {
		return vm.OnTriggerEvent(Error{
			UIComponent: model.Dialog("Shipping", "Choose a shipping option before buying."),
		})
	}
	vm.state.Purchased = false
	ctx, seq := vm.flights.Start(buyKey)
	return core.Receive(buyKey, seq, vm.buy.Execute(ctx, vm.state.SelectedShipping))
}

func (vm *ViewModel) addToBasket(ev AddToBasket) tea.Cmd {
	count := ev.Count
	if count <= 0 {
		count = 1
	}
	vm.state.Purchased = false
	ctx, seq := vm.flights.Start(addKey)
	return core.Receive(addKey, seq, vm.add.Execute(ctx, ev.ProductID, count))
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
	return vm.OnTriggerEvent(GetBasket{})
}

func (vm *ViewModel) updateNetworkState(ev UpdateNetworkState) tea.Cmd {
	vm.state.NetworkState = ev.State
	return nil
}
