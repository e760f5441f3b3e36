package gimbal

import (
	"sync"
	"sync/atomic"
)

// panicDisposed is the message raised on use after Dispose. Using a
// controller past teardown is a programming error in the owning view and
// fails loudly rather than being swallowed.
const panicDisposed = "gimbal: controller used after Dispose"

// stateHolder owns the current/previous/initial snapshot triple and the
// change detection that gates writes. It is the single source of truth for
// a controller; the stream and the zero-payload listeners both hang off the
// one notify hook invoked on every committed change.
//
// Writers are serialized by the mutex and the swap-plus-notify runs as one
// critical section, so no observer can see a current snapshot ahead of its
// publication. Reads go through atomic pointers and never take the mutex,
// which lets listeners re-read the current value from inside their own
// callbacks.
type stateHolder struct {
	mu       sync.Mutex
	current  atomic.Pointer[ViewState]
	previous atomic.Pointer[ViewState]
	initial  ViewState
	disposed atomic.Bool

	// notify is invoked inside the critical section for every committed
	// change. The stream and the listeners both fan out from here.
	notify func(Change)
}

func newStateHolder(initial ViewState, notify func(Change)) *stateHolder {
	h := &stateHolder{initial: initial, notify: notify}
	first := initial
	h.current.Store(&first)
	prev := initial
	h.previous.Store(&prev)
	return h
}

// get returns the live snapshot.
func (h *stateHolder) get() ViewState {
	return *h.current.Load()
}

// prev returns the snapshot immediately before the last accepted change.
func (h *stateHolder) prev() ViewState {
	return *h.previous.Load()
}

// swap replaces the current snapshot with the one produced by build, which
// receives the live snapshot inside the critical section. When gated is
// true the write is suppressed if the built snapshot equals the current one
// (no replacement, no notification, previous untouched). transform runs
// inside the critical section too and may adjust the outgoing change or
// veto it with an error; on veto nothing is replaced or notified.
//
// Returns whether a change was committed.
func (h *stateHolder) swap(op ChangeOp, gated bool, build func(ViewState) ViewState, transform func(*Change) error) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.disposed.Load() {
		panic(panicDisposed)
	}

	cur := *h.current.Load()
	next := build(cur)
	if gated && next == cur {
		return false, nil
	}

	ch := Change{Op: op, Previous: cur, Current: next}
	if transform != nil {
		if err := transform(&ch); err != nil {
			return false, err
		}
	}

	h.previous.Store(&cur)
	committed := ch.Current
	h.current.Store(&committed)

	if h.notify != nil {
		h.notify(ch)
	}
	return true, nil
}

// dispose marks the holder terminal. Returns false if already disposed.
func (h *stateHolder) dispose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed.Load() {
		return false
	}
	h.disposed.Store(true)
	return true
}
