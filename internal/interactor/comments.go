package interactor

import (
	"context"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

// GetComments streams the comments of a product.
type GetComments struct {
	repo Repository
}

// NewGetComments creates the interactor.
func NewGetComments(r Repository) *GetComments {
	return &GetComments{repo: r}
}

// Execute starts the fetch.
func (i *GetComments) Execute(ctx context.Context, productID int) <-chan core.DataState[[]model.Comment] {
	return core.Emit(ctx, func(send func(core.DataState[[]model.Comment]) bool) {
		if !send(core.Loading[[]model.Comment](model.ProgressLoading)) {
			return
		}
		defer send(core.Loading[[]model.Comment](model.ProgressIdle))

		comments, err := i.repo.GetComments(ctx, productID)
		if err != nil {
			sendAll(send, failureStates[[]model.Comment](err))
			return
		}
		sendAll(send, []core.DataState[[]model.Comment]{
			core.NetworkStatus[[]model.Comment](model.NetworkGood),
			core.Data(comments),
		})
	})
}

// AddComment posts a comment. Data(true) means the comment was stored.
type AddComment struct {
	repo Repository
}

// NewAddComment creates the interactor.
func NewAddComment(r Repository) *AddComment {
	return &AddComment{repo: r}
}

// Execute starts the mutation.
func (i *AddComment) Execute(ctx context.Context, productID int, rate float64, comment string) <-chan core.DataState[bool] {
	return core.Emit(ctx, func(send func(core.DataState[bool]) bool) {
		if !send(core.Loading[bool](model.ProgressButtonLoading)) {
			return
		}
		defer send(core.Loading[bool](model.ProgressIdle))

		msg, err := i.repo.AddComment(ctx, productID, rate, comment)
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
