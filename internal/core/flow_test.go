package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pankaj1920/shop/internal/model"
)

func drain[T any](t *testing.T, cmd func() FlowMsg[T]) []DataState[T] {
	t.Helper()
	var got []DataState[T]
	for i := 0; i < 100; i++ {
		msg := cmd()
		if msg.Done {
			return got
		}
		got = append(got, msg.State)
		next := msg.Next()
		require.NotNil(t, next)
		cmd = func() FlowMsg[T] { return next().(FlowMsg[T]) }
	}
	t.Fatal("stream did not finish")
	return nil
}

func TestReceive_DeliversStreamInOrder(t *testing.T) {
	ch := Emit(context.Background(), func(send func(DataState[int]) bool) {
		send(Loading[int](model.ProgressLoading))
		send(Data(7))
		send(Loading[int](model.ProgressIdle))
	})

	first := Receive("k", 3, ch)
	got := drain(t, func() FlowMsg[int] { return first().(FlowMsg[int]) })

	require.Len(t, got, 3)
	require.Equal(t, KindLoading, got[0].Kind)
	require.Equal(t, model.ProgressLoading, got[0].ProgressBarState)
	require.Equal(t, KindData, got[1].Kind)
	require.True(t, got[1].HasData)
	require.Equal(t, 7, got[1].Data)
	require.Equal(t, model.ProgressIdle, got[2].ProgressBarState)
}

func TestFlowMsg_CarriesKeyAndSeq(t *testing.T) {
	ch := Emit(context.Background(), func(send func(DataState[string]) bool) {
		send(Data("x"))
	})
	msg := Receive("comments", 9, ch)().(FlowMsg[string])
	require.Equal(t, "comments", msg.Key)
	require.Equal(t, uint64(9), msg.Seq)

	done := msg.Next()().(FlowMsg[string])
	require.True(t, done.Done)
	require.Nil(t, done.Next())
}

func TestEmit_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan bool, 1)

	ch := Emit(ctx, func(send func(DataState[int]) bool) {
		send(Loading[int](model.ProgressLoading))
		returned <- send(Data(1))
	})

	<-ch
	cancel()

	select {
	case ok := <-returned:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("producer blocked after cancel")
	}

	_, open := <-ch
	require.False(t, open)
}
