package interactor

import (
	"context"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

// GetBasket streams the basket lines.
type GetBasket struct {
	repo Repository
}

// NewGetBasket creates the interactor.
func NewGetBasket(r Repository) *GetBasket {
	return &GetBasket{repo: r}
}

// Execute starts the fetch.
func (i *GetBasket) Execute(ctx context.Context) <-chan core.DataState[[]model.BasketItem] {
	return core.Emit(ctx, func(send func(core.DataState[[]model.BasketItem]) bool) {
		if !send(core.Loading[[]model.BasketItem](model.ProgressLoading)) {
			return
		}
		defer send(core.Loading[[]model.BasketItem](model.ProgressIdle))

		items, err := i.repo.GetBasket(ctx)
		if err != nil {
			sendAll(send, failureStates[[]model.BasketItem](err))
			return
		}
		sendAll(send, []core.DataState[[]model.BasketItem]{
			core.NetworkStatus[[]model.BasketItem](model.NetworkGood),
			core.Data(items),
		})
	})
}

// BuyProduct places an order for the basket. Data(true) means the order
// was accepted.
type BuyProduct struct {
	repo Repository
}

// NewBuyProduct creates the interactor.
func NewBuyProduct(r Repository) *BuyProduct {
	return &BuyProduct{repo: r}
}

// Execute starts the mutation.
func (i *BuyProduct) Execute(ctx context.Context, shipping model.ShippingType) <-chan core.DataState[bool] {
	return core.Emit(ctx, func(send func(core.DataState[bool]) bool) {
		if !send(core.Loading[bool](model.ProgressButtonLoading)) {
			return
		}
		defer send(core.Loading[bool](model.ProgressIdle))

		msg, err := i.repo.BuyProduct(ctx, shipping)
		if err != nil {
			sendAll(send, failureStates[bool](err))
			return
		}
		states := []core.DataState[bool]{core.NetworkStatus[bool](model.NetworkGood)}
		if msg != "" {
			states = append(states, core.Response[bool](model.None(msg)))
		}
		sendAll(send, append(states, core.Data(true)))
	})
}

// AddToBasket adds units of a product to the basket. Data(true) means the
// basket changed.
type AddToBasket struct {
	repo Repository
}

// NewAddToBasket creates the interactor.
func NewAddToBasket(r Repository) *AddToBasket {
	return &AddToBasket{repo: r}
}

// Execute starts the mutation.
func (i *AddToBasket) Execute(ctx context.Context, productID, count int) <-chan core.DataState[bool] {
	return core.Emit(ctx, func(send func(core.DataState[bool]) bool) {
		if !send(core.Loading[bool](model.ProgressButtonLoading)) {
			return
		}
		defer send(core.Loading[bool](model.ProgressIdle))

		msg, err := i.repo.AddToBasket(ctx, productID, count)
		if err != nil {
			sendAll(send, failureStates[bool](err))
			return
		}
		states := []core.DataState[bool]{core.NetworkStatus[bool](model.NetworkGood)}
		if msg != "" {
			states = append(states, core.Response[bool](model.None(msg)))
		}
		sendAll(send, append(states, core.Data(true)))
	})
}
