package core

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// FlowMsg is the tea.Msg delivered for every value read from an
// interactor stream. Done is set once the stream is closed.
type FlowMsg[T any] struct {
	Key   string
	Seq   uint64
	State DataState[T]
	Done  bool

	ch <-chan DataState[T]
}

// Next returns the command that reads the following value of the same
// stream. It returns nil once the stream is done.
func (m FlowMsg[T]) Next() tea.Cmd {
	if m.Done || m.ch == nil {
		return nil
	}
	return Receive(m.Key, m.Seq, m.ch)
}

// Receive returns a tea.Cmd that waits for one value on ch and wraps it in
// a FlowMsg tagged with key and seq.
func Receive[T any](key string, seq uint64, ch <-chan DataState[T]) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return FlowMsg[T]{Key: key, Seq: seq, Done: true}
		}
		return FlowMsg[T]{Key: key, Seq: seq, State: st, ch: ch}
	}
}

// Emit starts fn on a goroutine and returns the stream it writes to. The
// send function passed to fn reports false once ctx is cancelled, and the
// stream is closed when fn returns.
func Emit[T any](ctx context.Context, fn func(send func(DataState[T]) bool)) <-chan DataState[T] {
	ch := make(chan DataState[T])
	go func() {
		defer close(ch)
		fn(func(st DataState[T]) bool {
			select {
			case ch <- st:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return ch
}
