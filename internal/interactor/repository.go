// Package interactor wraps repository calls as staged result streams.
//
// Every Execute method returns immediately with a channel. The channel
// yields Loading with an active progress state first, then NetworkStatus
// and Data on success or Response on failure, then Loading(ProgressIdle),
// and is closed afterwards. Cancelling the context stops the stream.
package interactor

import (
	"context"
	"fmt"

	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/shopapi"
	"github.com/pankaj1920/shop/internal/store"
)

// Repository is the data source behind the interactors. It is implemented
// by the remote API client and by LocalRepository.
type Repository interface {
	Ping(ctx context.Context) error
	GetComments(ctx context.Context, productID int) ([]model.Comment, error)
	// AddComment returns an acknowledgement message, possibly empty.
	AddComment(ctx context.Context, productID int, rate float64, comment string) (string, error)
	GetBasket(ctx context.Context) ([]model.BasketItem, error)
	// AddToBasket returns an acknowledgement message, possibly empty.
	AddToBasket(ctx context.Context, productID, count int) (string, error)
	// BuyProduct returns an acknowledgement message, possibly empty.
	BuyProduct(ctx context.Context, shipping model.ShippingType) (string, error)
}

var (
	_ Repository = (*shopapi.Client)(nil)
	_ Repository = (*LocalRepository)(nil)
)

// LocalRepository serves the interactors from the local SQLite store.
type LocalRepository struct {
	store store.Store
	user  string
}

// NewLocalRepository creates a repository that records comments as user.
func NewLocalRepository(s store.Store, user string) *LocalRepository {
	if user == "" {
		user = "You"
	}
	return &LocalRepository{store: s, user: user}
}

// Ping checks the database.
func (r *LocalRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// GetComments reads a product's comments from the store.
func (r *LocalRepository) GetComments(ctx context.Context, productID int) ([]model.Comment, error) {
	return r.store.GetComments(ctx, productID)
}

// AddComment stores a comment.
func (r *LocalRepository) AddComment(ctx context.Context, productID int, rate float64, comment string) (string, error) {
	saved, err := r.store.AddComment(ctx, model.Comment{
		ProductID: productID,
		User:      r.user,
		Comment:   comment,
		Rate:      rate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("comment %s saved locally", saved.ID), nil
}

// GetBasket reads the basket from the store.
func (r *LocalRepository) GetBasket(ctx context.Context) ([]model.BasketItem, error) {
	return r.store.GetBasket(ctx)
}

// AddToBasket adds count units of a product to the stored basket.
func (r *LocalRepository) AddToBasket(ctx context.Context, productID, count int) (string, error) {
	if err := r.store.AddToBasket(ctx, model.BasketItem{ProductID: productID, Count: count}); err != nil {
		return "", err
	}
	return fmt.Sprintf("added %d x product %d to the basket", count, productID), nil
}

// BuyProduct places the order in the store.
func (r *LocalRepository) BuyProduct(ctx context.Context, shipping model.ShippingType) (string, error) {
	order, err := r.store.PlaceOrder(ctx, shipping)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("order %s placed, total %.2f", order.ID, order.Total), nil
}
