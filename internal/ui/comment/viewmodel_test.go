package comment

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

type fetchFunc func(ctx context.Context, productID int) <-chan core.DataState[[]model.Comment]

func (f fetchFunc) Execute(ctx context.Context, productID int) <-chan core.DataState[[]model.Comment] {
	return f(ctx, productID)
}

type postFunc func(ctx context.Context, productID int, rate float64, comment string) <-chan core.DataState[bool]

func (f postFunc) Execute(ctx context.Context, productID int, rate float64, comment string) <-chan core.DataState[bool] {
	return f(ctx, productID, rate, comment)
}

func script[T any](ctx context.Context, states ...core.DataState[T]) <-chan core.DataState[T] {
	return core.Emit(ctx, func(send func(core.DataState[T]) bool) {
		for _, st := range states {
			if !send(st) {
				return
			}
		}
	})
}

// pump runs cmd and everything it leads to, feeding each message back
// into vm.
func pump(t *testing.T, vm *ViewModel, cmd tea.Cmd) {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for steps := 0; len(pending) > 0; steps++ {
		require.Less(t, steps, 1000, "runaway command loop")
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			pending = append(pending, msg...)
		default:
			pending = append(pending, vm.Update(msg))
		}
	}
}

var (
	c1 = model.Comment{ID: "c1", ProductID: 7, User: "Mina", Comment: "Comfy", Rate: 5}
	c2 = model.Comment{ID: "c2", ProductID: 7, User: "Omar", Comment: "Too soft", Rate: 3}
	c3 = model.Comment{ID: "c3", ProductID: 7, User: "Lea", Comment: "Nice", Rate: 4}
)

func fetchReturning(calls *int, lists ...[]model.Comment) fetchFunc {
	return func(ctx context.Context, _ int) <-chan core.DataState[[]model.Comment] {
		list := lists[len(lists)-1]
		if *calls < len(lists) {
			list = lists[*calls]
		}
		*calls++
		return script(ctx,
			core.Loading[[]model.Comment](model.ProgressLoading),
			core.NetworkStatus[[]model.Comment](model.NetworkGood),
			core.Data(list),
			core.Loading[[]model.Comment](model.ProgressIdle),
		)
	}
}

func noPost(t *testing.T) postFunc {
	return func(context.Context, int, float64, string) <-chan core.DataState[bool] {
		t.Fatal("unexpected post")
		return nil
	}
}

func TestErrorQueue_FIFOAndSilentFiltered(t *testing.T) {
	vm := NewViewModel(context.Background(), nil, nil)
	defer vm.Close()

	a := model.Dialog("A", "first")
	b := model.Dialog("B", "second")

	require.Nil(t, vm.OnTriggerEvent(Error{UIComponent: a}))
	vm.OnTriggerEvent(Error{UIComponent: model.None("just a log line")})
	vm.OnTriggerEvent(Error{UIComponent: b})
	require.Equal(t, []model.UIComponent{a, b}, vm.State().ErrorQueue.Items())

	vm.OnTriggerEvent(RemoveHeadFromQueue{})
	require.Equal(t, []model.UIComponent{b}, vm.State().ErrorQueue.Items())

	vm.OnTriggerEvent(RemoveHeadFromQueue{})
	require.True(t, vm.State().ErrorQueue.IsEmpty())

	before := vm.State().ErrorQueue.Version()
	require.NotPanics(t, func() { vm.OnTriggerEvent(RemoveHeadFromQueue{}) })
	require.True(t, vm.State().ErrorQueue.IsEmpty())
	require.Equal(t, before, vm.State().ErrorQueue.Version())
}

func TestErrorQueue_EveryChangeBumpsVersion(t *testing.T) {
	vm := NewViewModel(context.Background(), nil, nil)
	defer vm.Close()

	v0 := vm.State().ErrorQueue.Version()
	vm.OnTriggerEvent(Error{UIComponent: model.Dialog("A", "x")})
	v1 := vm.State().ErrorQueue.Version()
	vm.OnTriggerEvent(Error{UIComponent: model.Dialog("A", "x")})
	v2 := vm.State().ErrorQueue.Version()

	require.Greater(t, v1, v0)
	require.Greater(t, v2, v1)
}

func TestGetComments_StagesAndReplaces(t *testing.T) {
	calls := 0
	fetch := fetchReturning(&calls, []model.Comment{c3}, []model.Comment{c1, c2})
	vm := NewViewModel(context.Background(), fetch, noPost(t))
	defer vm.Close()

	pump(t, vm, vm.OnTriggerEvent(GetComments{}))
	require.Equal(t, []model.Comment{c3}, vm.State().Comments)

	// Step through the second fetch to observe the progress indicator.
	cmd := vm.OnTriggerEvent(GetComments{})
	cmd = vm.Update(cmd())
	require.Equal(t, model.ProgressLoading, vm.State().ProgressBarState)
	pump(t, vm, cmd)

	st := vm.State()
	require.Equal(t, []model.Comment{c1, c2}, st.Comments)
	require.Equal(t, model.ProgressIdle, st.ProgressBarState)
	require.False(t, st.ProgressBarState.IsLoading())
	require.Equal(t, 2, calls)
}

func TestGetComments_UsesCurrentProductID(t *testing.T) {
	var got int
	fetch := fetchFunc(func(ctx context.Context, productID int) <-chan core.DataState[[]model.Comment] {
		got = productID
		return script[[]model.Comment](ctx)
	})
	vm := NewViewModel(context.Background(), fetch, noPost(t))
	defer vm.Close()

	require.Nil(t, vm.OnTriggerEvent(UpdateProductID{ID: 42}))
	pump(t, vm, vm.OnTriggerEvent(GetComments{}))

	require.Equal(t, 42, got)
	require.Equal(t, 42, vm.State().ProductID)
}

func TestAddComment_FailureQueuesErrorWithoutRefetch(t *testing.T) {
	calls := 0
	fetch := fetchReturning(&calls, []model.Comment{c1, c2})
	failure := model.Dialog("Error", "rate out of range")
	post := postFunc(func(ctx context.Context, _ int, _ float64, _ string) <-chan core.DataState[bool] {
		return script(ctx,
			core.Loading[bool](model.ProgressButtonLoading),
			core.NetworkStatus[bool](model.NetworkGood),
			core.Response[bool](failure),
			core.Loading[bool](model.ProgressIdle),
		)
	})
	vm := NewViewModel(context.Background(), fetch, post)
	defer vm.Close()

	pump(t, vm, vm.OnTriggerEvent(GetComments{}))
	before := vm.State().Comments

	pump(t, vm, vm.OnTriggerEvent(AddComment{Comment: "hi", Rate: 9}))

	st := vm.State()
	require.Equal(t, before, st.Comments)
	require.Equal(t, []model.UIComponent{failure}, st.ErrorQueue.Items())
	require.Equal(t, 1, calls)
	require.Equal(t, model.ProgressIdle, st.ProgressBarState)
}

func TestAddComment_SuccessRefetches(t *testing.T) {
	calls := 0
	fetch := fetchReturning(&calls, []model.Comment{c1}, []model.Comment{c3, c1})

	var gotRate float64
	var gotText string
	var gotProduct int
	post := postFunc(func(ctx context.Context, productID int, rate float64, comment string) <-chan core.DataState[bool] {
		gotProduct, gotRate, gotText = productID, rate, comment
		return script(ctx,
			core.Loading[bool](model.ProgressButtonLoading),
			core.NetworkStatus[bool](model.NetworkGood),
			core.Response[bool](model.None("comment saved")),
			core.Data(true),
			core.Loading[bool](model.ProgressIdle),
		)
	})
	vm := NewViewModel(context.Background(), fetch, post)
	defer vm.Close()

	vm.OnTriggerEvent(UpdateProductID{ID: 7})
	pump(t, vm, vm.OnTriggerEvent(GetComments{}))
	pump(t, vm, vm.OnTriggerEvent(AddComment{Comment: "Nice", Rate: 4}))

	st := vm.State()
	require.Equal(t, 7, gotProduct)
	require.Equal(t, 4.0, gotRate)
	require.Equal(t, "Nice", gotText)
	require.Equal(t, 2, calls)
	require.Equal(t, []model.Comment{c3, c1}, st.Comments)
	require.True(t, st.ErrorQueue.IsEmpty(), "silent acknowledgement must not be queued")
}

func TestAddComment_DataFalseDoesNotRefetch(t *testing.T) {
	calls := 0
	fetch := fetchReturning(&calls, []model.Comment{c1})
	post := postFunc(func(ctx context.Context, _ int, _ float64, _ string) <-chan core.DataState[bool] {
		return script(ctx, core.Data(false), core.NoData[bool]())
	})
	vm := NewViewModel(context.Background(), fetch, post)
	defer vm.Close()

	pump(t, vm, vm.OnTriggerEvent(AddComment{Comment: "x", Rate: 3}))
	require.Zero(t, calls)
}

func TestGetComments_StaleResponseDiscarded(t *testing.T) {
	calls := 0
	fetch := fetchReturning(&calls, []model.Comment{c3}, []model.Comment{c1, c2})
	vm := NewViewModel(context.Background(), fetch, noPost(t))
	defer vm.Close()

	stale := vm.OnTriggerEvent(GetComments{})
	fresh := vm.OnTriggerEvent(GetComments{})

	pump(t, vm, fresh)
	pump(t, vm, stale)

	require.Equal(t, []model.Comment{c1, c2}, vm.State().Comments)
	require.Equal(t, 2, calls)
}

func TestRetryNetwork_RefetchesAndTracksNetworkState(t *testing.T) {
	down := true
	netErr := model.Dialog("Network Error", "unreachable")
	fetch := fetchFunc(func(ctx context.Context, _ int) <-chan core.DataState[[]model.Comment] {
		if down {
			return script(ctx,
				core.Loading[[]model.Comment](model.ProgressLoading),
				core.NetworkStatus[[]model.Comment](model.NetworkFailed),
				core.Response[[]model.Comment](netErr),
				core.Loading[[]model.Comment](model.ProgressIdle),
			)
		}
		return script(ctx,
			core.Loading[[]model.Comment](model.ProgressLoading),
			core.NetworkStatus[[]model.Comment](model.NetworkGood),
			core.Data([]model.Comment{c1}),
			core.Loading[[]model.Comment](model.ProgressIdle),
		)
	})
	vm := NewViewModel(context.Background(), fetch, noPost(t))
	defer vm.Close()

	pump(t, vm, vm.OnTriggerEvent(GetComments{}))
	st := vm.State()
	require.Equal(t, model.NetworkFailed, st.NetworkState)
	require.Equal(t, []model.UIComponent{netErr}, st.ErrorQueue.Items())
	require.Empty(t, st.Comments)

	down = false
	vm.OnTriggerEvent(RemoveHeadFromQueue{})
	pump(t, vm, vm.OnTriggerEvent(RetryNetwork{}))

	st = vm.State()
	require.Equal(t, model.NetworkGood, st.NetworkState)
	require.Equal(t, []model.Comment{c1}, st.Comments)
	require.True(t, st.ErrorQueue.IsEmpty())
}

func TestPureEvents(t *testing.T) {
	vm := NewViewModel(context.Background(), nil, nil)
	defer vm.Close()

	require.Nil(t, vm.OnTriggerEvent(UpdateAddCommentDialogState{Value: model.Show}))
	require.Equal(t, model.Show, vm.State().AddCommentDialogState)

	require.Nil(t, vm.OnTriggerEvent(UpdateNetworkState{State: model.NetworkFailed}))
	require.Equal(t, model.NetworkFailed, vm.State().NetworkState)

	require.Nil(t, vm.OnTriggerEvent(nil))
}

func TestUpdate_IgnoresForeignMessages(t *testing.T) {
	vm := NewViewModel(context.Background(), nil, nil)
	defer vm.Close()

	require.Nil(t, vm.Update(core.FlowMsg[bool]{Key: "buy", Seq: 1, State: core.Data(true)}))
	require.Nil(t, vm.Update(core.FlowMsg[[]model.Comment]{Key: fetchKey, Seq: 99, State: core.Data([]model.Comment{c1})}))
	require.Nil(t, vm.Update(tea.WindowSizeMsg{}))
	require.Empty(t, vm.State().Comments)
}

func TestClose_CancelsInFlightFetch(t *testing.T) {
	cancelled := make(chan struct{})
	fetch := fetchFunc(func(ctx context.Context, _ int) <-chan core.DataState[[]model.Comment] {
		return core.Emit(ctx, func(send func(core.DataState[[]model.Comment]) bool) {
			<-ctx.Done()
			close(cancelled)
		})
	})
	vm := NewViewModel(context.Background(), fetch, noPost(t))

	cmd := vm.OnTriggerEvent(GetComments{})
	require.NotNil(t, cmd)
	vm.Close()

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not cancelled")
	}
	require.Nil(t, vm.Update(cmd()))
}

func TestAddComment_IdleKeepsRefetchSpinner(t *testing.T) {
	calls := 0
	post := postFunc(func(ctx context.Context, _ int, _ float64, _ string) <-chan core.DataState[bool] {
		return script(ctx,
			core.Loading[bool](model.ProgressButtonLoading),
			core.Data(true),
			core.Loading[bool](model.ProgressIdle),
		)
	})
	vm := NewViewModel(context.Background(), fetchReturning(&calls, []model.Comment{c1}), post)
	defer vm.Close()

	next := vm.Update(vm.OnTriggerEvent(AddComment{Comment: "Comfy", Rate: 5})())
	require.Equal(t, model.ProgressButtonLoading, vm.State().ProgressBarState)

	batch, ok := vm.Update(next())().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	refetch, postNext := batch[0], batch[1]

	refetchNext := vm.Update(refetch())
	require.Equal(t, model.ProgressLoading, vm.State().ProgressBarState)

	vm.Update(postNext())
	require.Equal(t, model.ProgressLoading, vm.State().ProgressBarState)

	pump(t, vm, refetchNext)
	require.Equal(t, model.ProgressIdle, vm.State().ProgressBarState)
	require.Equal(t, []model.Comment{c1}, vm.State().Comments)
	require.Equal(t, 1, calls)
}
