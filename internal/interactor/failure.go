package interactor

import (
	"context"
	"errors"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/shopapi"
	"github.com/pankaj1920/shop/internal/store"
)

const networkErrorMessage = "Unable to reach the shop. Check your connection and retry."

// failureStates maps a repository error to the states that report it.
// Cancellation reports nothing.
func failureStates[T any](err error) []core.DataState[T] {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	if shopapi.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return []core.DataState[T]{
			core.NetworkStatus[T](model.NetworkFailed),
			core.Response[T](model.Dialog("Network Error", networkErrorMessage)),
		}
	}

	var c model.UIComponent
	switch apiErr, isAPI := shopapi.AsAPIError(err); {
	case shopapi.IsAuthError(err):
		c = model.Dialog("Authentication", err.Error())
	case isAPI:
		title := apiErr.Title
		if title == "" {
			title = "Error"
		}
		c = model.Dialog(title, apiErr.Message)
	case errors.Is(err, store.ErrEmptyBasket):
		c = model.Dialog("Basket", "Your basket is empty.")
	case errors.Is(err, store.ErrUnknownProduct):
		c = model.Dialog("Product", "That product is not in the catalogue.")
	default:
		c = model.Dialog("Error", err.Error())
	}

	// The backend answered, so the network is fine.
	return []core.DataState[T]{
		core.NetworkStatus[T](model.NetworkGood),
		core.Response[T](c),
	}
}

// sendAll sends states in order and stops at the first refused send.
func sendAll[T any](send func(core.DataState[T]) bool, states []core.DataState[T]) bool {
	for _, st := range states {
		if !send(st) {
			return false
		}
	}
	return true
}
