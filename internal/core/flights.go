package core

import "context"

type flight struct {
	key       string
	exclusive bool
	cancel    context.CancelFunc
}

// Flights tracks the interactor streams started by one screen. Every
// stream gets a monotonic sequence number. Exclusive streams share a key
// and a newer one cancels and forgets the older; the rest run to
// completion. Flights is owned by a single Bubble Tea model and is not
// safe for concurrent use.
type Flights struct {
	ctx     context.Context
	cancel  context.CancelFunc
	seq     uint64
	flights map[uint64]flight
	latest  map[string]uint64
}

// NewFlights derives a screen lifetime from parent.
func NewFlights(parent context.Context) *Flights {
	ctx, cancel := context.WithCancel(parent)
	return &Flights{
		ctx:     ctx,
		cancel:  cancel,
		flights: make(map[uint64]flight),
		latest:  make(map[string]uint64),
	}
}

// Supersede starts an exclusive stream for key, cancelling any previous
// stream for the same key.
func (f *Flights) Supersede(key string) (context.Context, uint64) {
	if prev, ok := f.latest[key]; ok {
		f.Finish(prev)
	}
	ctx, seq := f.start(key, true)
	f.latest[key] = seq
	return ctx, seq
}

// Start begins a stream that is never superseded.
func (f *Flights) Start(key string) (context.Context, uint64) {
	return f.start(key, false)
}

func (f *Flights) start(key string, exclusive bool) (context.Context, uint64) {
	f.seq++
	ctx, cancel := context.WithCancel(f.ctx)
	f.flights[f.seq] = flight{key: key, exclusive: exclusive, cancel: cancel}
	return ctx, f.seq
}

// Current reports whether a message tagged with key and seq belongs to a
// live stream of this Flights and should still be applied.
func (f *Flights) Current(key string, seq uint64) bool {
	fl, ok := f.flights[seq]
	return ok && fl.key == key
}

// Finish cancels and forgets the stream. It is a no-op for unknown
// sequence numbers.
func (f *Flights) Finish(seq uint64) {
	fl, ok := f.flights[seq]
	if !ok {
		return
	}
	fl.cancel()
	delete(f.flights, seq)
	if fl.exclusive && f.latest[fl.key] == seq {
		delete(f.latest, fl.key)
	}
}

// Live reports whether an exclusive stream for key is running.
func (f *Flights) Live(key string) bool {
	_, ok := f.latest[key]
	return ok
}

// InFlight returns the number of streams not yet finished.
func (f *Flights) InFlight() int {
	return len(f.flights)
}

// Close cancels every stream. Later starts return already-cancelled
// contexts.
func (f *Flights) Close() {
	f.cancel()
	for seq := range f.flights {
		delete(f.flights, seq)
	}
	for key := range f.latest {
		delete(f.latest, key)
	}
}
