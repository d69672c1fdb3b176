// Package netwatch probes backend reachability in the background and
// reports connectivity changes to the Bubble Tea runtime.
package netwatch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/shopapi"
)

// Pinger is anything that can check backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChangeMsg is a tea.Msg sent when the observed network state changes.
type ChangeMsg struct {
	State model.NetworkState
	Err   error
}

// probeTimeout bounds a single health probe.
const probeTimeout = 10 * time.Second

// Watcher orchestrates periodic health probes.
type Watcher struct {
	pinger    Pinger
	interval  time.Duration
	changeCh  chan ChangeMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        sync.Mutex
	running   bool
	state     model.NetworkState
	lastCheck time.Time
}

// New creates a Watcher probing p every interval. A non-positive interval
// defaults to 15 seconds.
func New(p Pinger, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{
		pinger:    p,
		interval:  interval,
		changeCh:  make(chan ChangeMsg, 8),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		state:     model.NetworkGood,
	}
}

// Start launches the probe loop and returns the command that waits for the
// first change.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	go w.loop()

	return w.WaitForNextChange()
}

// Stop halts the probe loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	close(w.stopCh)
	w.running = false
}

// Recheck triggers an immediate probe.
func (w *Watcher) Recheck() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
		// A probe is already pending.
	}
}

// State returns the last observed network state.
func (w *Watcher) State() model.NetworkState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastCheck returns when the last probe finished.
func (w *Watcher) LastCheck() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastCheck
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.probe()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.probe()
		case <-w.triggerCh:
			w.probe()
		}
	}
}

// probe runs one health check and publishes the result if the state
// changed.
func (w *Watcher) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := w.pinger.Ping(ctx)
	state := classify(err)

	w.mu.Lock()
	changed := state != w.state
	w.state = state
	w.lastCheck = time.Now()
	w.mu.Unlock()

	if !changed {
		return
	}
	if err != nil {
		log.Printf("netwatch: network %s: %v", state, err)
	} else {
		log.Printf("netwatch: network %s", state)
	}

	select {
	case w.changeCh <- ChangeMsg{State: state, Err: err}:
	default:
		// Drop if nobody is listening to avoid blocking the loop.
	}
}

// classify treats only transport failures as a lost network. Any answer
// from the backend, including an error status, means it is reachable.
func classify(err error) model.NetworkState {
	if err == nil {
		return model.NetworkGood
	}
	if shopapi.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return model.NetworkFailed
	}
	return model.NetworkGood
}

// WaitForNextChange returns a tea.Cmd that waits for the next state
// change. Call it again after handling a ChangeMsg to keep listening.
func (w *Watcher) WaitForNextChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.changeCh:
			return msg
		case <-w.stopCh:
			return nil
		}
	}
}
