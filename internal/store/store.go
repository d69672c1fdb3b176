package store

import (
	"context"
	"errors"

	"github.com/pankaj1920/shop/internal/model"
)

// ErrEmptyBasket is returned when ordering with nothing in the basket.
var ErrEmptyBasket = errors.New("basket is empty")

// ErrUnknownProduct is returned when a comment or basket line names a
// product that is not in the catalogue.
var ErrUnknownProduct = errors.New("unknown product")

// Store defines the local persistence used when the shop runs offline.
type Store interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// === Comments ===

	GetComments(ctx context.Context, productID int) ([]model.Comment, error)
	AddComment(ctx context.Context, c model.Comment) (model.Comment, error)

	// === Basket ===

	GetBasket(ctx context.Context) ([]model.BasketItem, error)
	AddToBasket(ctx context.Context, item model.BasketItem) error

	// === Orders ===

	// PlaceOrder records an order for the current basket and empties it.
	PlaceOrder(ctx context.Context, shipping model.ShippingType) (model.Order, error)
}
