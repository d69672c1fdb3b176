package checkout

import (
	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

// State is the snapshot the checkout screen renders from.
type State struct {
	Basket                    []model.BasketItem
	TotalBasket               float64
	SelectedShipping          model.ShippingType
	SelectShippingDialogState model.UIComponentState
	Purchased                 bool
	ProgressBarState          model.ProgressBarState
	NetworkState              model.NetworkState
	ErrorQueue                core.MessageQueue
}

// TotalCost is the basket total plus the selected shipping price.
func (s State) TotalCost() float64 {
	return s.TotalBasket + s.SelectedShipping.Price
}
