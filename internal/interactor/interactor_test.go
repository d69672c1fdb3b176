package interactor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/shopapi"
	"github.com/pankaj1920/shop/internal/store"
	"github.com/pankaj1920/shop/internal/testutil"
)

type fakeRepo struct {
	comments []model.Comment
	basket   []model.BasketItem
	ack      string
	err      error
	block    chan struct{}
}

func (f *fakeRepo) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.err }

func (f *fakeRepo) GetComments(ctx context.Context, productID int) ([]model.Comment, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.comments, f.err
}

func (f *fakeRepo) AddComment(ctx context.Context, productID int, rate float64, comment string) (string, error) {
	return f.ack, f.err
}

func (f *fakeRepo) GetBasket(ctx context.Context) ([]model.BasketItem, error) {
	return f.basket, f.err
}

func (f *fakeRepo) AddToBasket(ctx context.Context, productID, count int) (string, error) {
	return f.ack, f.err
}

func (f *fakeRepo) BuyProduct(ctx context.Context, shipping model.ShippingType) (string, error) {
	return f.ack, f.err
}

func collect[T any](t *testing.T, ch <-chan core.DataState[T]) []core.DataState[T] {
	t.Helper()
	var got []core.DataState[T]
	timeout := time.After(2 * time.Second)
	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, st)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}

func kinds[T any](states []core.DataState[T]) []core.Kind {
	out := make([]core.Kind, len(states))
	for i, st := range states {
		out[i] = st.Kind
	}
	return out
}

func TestGetComments_Success(t *testing.T) {
	comments := []model.Comment{{ID: "c1"}, {ID: "c2"}}
	repo := &fakeRepo{comments: comments}

	got := collect(t, NewGetComments(repo).Execute(context.Background(), 1))

	require.Equal(t, []core.Kind{core.KindLoading, core.KindNetworkStatus, core.KindData, core.KindLoading}, kinds(got))
	require.Equal(t, model.ProgressLoading, got[0].ProgressBarState)
	require.Equal(t, model.NetworkGood, got[1].NetworkState)
	require.Equal(t, comments, got[2].Data)
	require.Equal(t, model.ProgressIdle, got[3].ProgressBarState)
}

func TestFailureMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNetwork model.NetworkState
		wantTitle   string
	}{
		{"network", &shopapi.NetworkError{Op: "GET /comment", Err: errors.New("refused")}, model.NetworkFailed, "Network Error"},
		{"auth", &shopapi.AuthError{Message: "bad token"}, model.NetworkGood, "Authentication"},
		{"api with title", &shopapi.APIError{StatusCode: http.StatusOK, Title: "Oops", Message: "nope"}, model.NetworkGood, "Oops"},
		{"api without title", &shopapi.APIError{StatusCode: 500, Message: "nope"}, model.NetworkGood, "Error"},
		{"empty basket", fmt.Errorf("placing: %w", store.ErrEmptyBasket), model.NetworkGood, "Basket"},
		{"other", errors.New("boom"), model.NetworkGood, "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, NewGetComments(&fakeRepo{err: tt.err}).Execute(context.Background(), 1))

			require.Equal(t, []core.Kind{core.KindLoading, core.KindNetworkStatus, core.KindResponse, core.KindLoading}, kinds(got))
			require.Equal(t, tt.wantNetwork, got[1].NetworkState)
			require.Equal(t, model.ComponentDialog, got[2].UIComponent.Kind)
			require.Equal(t, tt.wantTitle, got[2].UIComponent.Title)
		})
	}
}

func TestAddComment_AckBecomesSilentResponse(t *testing.T) {
	got := collect(t, NewAddComment(&fakeRepo{ack: "stored"}).Execute(context.Background(), 1, 4, "hi"))

	require.Equal(t, []core.Kind{core.KindLoading, core.KindNetworkStatus, core.KindResponse, core.KindData, core.KindLoading}, kinds(got))
	require.Equal(t, model.ProgressButtonLoading, got[0].ProgressBarState)
	require.Equal(t, model.None("stored"), got[2].UIComponent)
	require.True(t, got[3].HasData)
	require.True(t, got[3].Data)
}

func TestAddComment_NoAck(t *testing.T) {
	got := collect(t, NewAddComment(&fakeRepo{}).Execute(context.Background(), 1, 4, "hi"))
	require.Equal(t, []core.Kind{core.KindLoading, core.KindNetworkStatus, core.KindData, core.KindLoading}, kinds(got))
}

func TestCancelledFetchReportsNothing(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	ch := NewGetComments(repo).Execute(ctx, 1)
	first := <-ch
	require.Equal(t, core.KindLoading, first.Kind)
	cancel()

	rest := collect(t, ch)
	for _, st := range rest {
		require.NotEqual(t, core.KindResponse, st.Kind)
		require.NotEqual(t, core.KindData, st.Kind)
	}
}

func TestCheckoutInteractors_LocalRepository(t *testing.T) {
	s := testutil.NewTestStore(t)
	repo := NewLocalRepository(s, "")
	ctx := context.Background()

	basket := collect(t, NewGetBasket(repo).Execute(ctx))
	require.Equal(t, core.KindData, basket[2].Kind)
	require.Len(t, basket[2].Data, 2)

	bought := collect(t, NewBuyProduct(repo).Execute(ctx, model.DefaultShippingTypes()[0]))
	require.Equal(t, []core.Kind{core.KindLoading, core.KindNetworkStatus, core.KindResponse, core.KindData, core.KindLoading}, kinds(bought))
	require.True(t, bought[2].UIComponent.IsSilent())
	require.True(t, bought[3].Data)

	again := collect(t, NewBuyProduct(repo).Execute(ctx, model.DefaultShippingTypes()[0]))
	require.Equal(t, core.KindResponse, again[2].Kind)
	require.Equal(t, "Basket", again[2].UIComponent.Title)

	added := collect(t, NewAddToBasket(repo).Execute(ctx, 2, 3))
	require.True(t, added[len(added)-2].Data)

	refilled := collect(t, NewGetBasket(repo).Execute(ctx))
	require.Len(t, refilled[2].Data, 1)
	require.Equal(t, 3, refilled[2].Data[0].Count)

	reordered := collect(t, NewBuyProduct(repo).Execute(ctx, model.DefaultShippingTypes()[0]))
	require.True(t, reordered[3].Data)
}

func TestLocalRepository_UnknownProduct(t *testing.T) {
	repo := NewLocalRepository(testutil.NewTestStore(t), "Tester")
	ctx := context.Background()

	tests := []struct {
		name   string
		states []core.DataState[bool]
	}{
		{"comment", collect(t, NewAddComment(repo).Execute(ctx, 99, 4, "nice"))},
		{"basket", collect(t, NewAddToBasket(repo).Execute(ctx, 99, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, core.KindResponse, tt.states[2].Kind)
			require.Equal(t, "Product", tt.states[2].UIComponent.Title)
			require.Equal(t, model.NetworkGood, tt.states[1].NetworkState)
		})
	}
}

func TestLocalRepository_AddComment(t *testing.T) {
	s := testutil.NewTestStore(t)
	repo := NewLocalRepository(s, "Tester")
	ctx := context.Background()

	added := collect(t, NewAddComment(repo).Execute(ctx, 2, 5, "Solid wood"))
	require.True(t, added[len(added)-2].Data)

	comments, err := repo.GetComments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "Tester", comments[0].User)

	rejected := collect(t, NewAddComment(repo).Execute(ctx, 2, 0, "no rate"))
	require.Equal(t, core.KindResponse, rejected[2].Kind)
}
