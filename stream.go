package gimbal

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/streamz"
)

// DefaultSubscriptionBuffer is the default per-subscriber channel capacity.
const DefaultSubscriptionBuffer = 16

// subConfig holds configuration options for a subscription.
type subConfig struct {
	buffer     int
	dropNewest bool
	throttle   float64
	debounce   time.Duration
}

// SubscribeOption configures a stream subscription.
type SubscribeOption func(*subConfig)

// WithSubscriptionBuffer sets the subscription's channel capacity.
// Minimum 1 so the initial-snapshot replay always fits.
func WithSubscriptionBuffer(n int) SubscribeOption {
	return func(c *subConfig) {
		if n < 1 {
			n = 1
		}
		c.buffer = n
	}
}

// WithDropNewest makes a full subscription drop incoming snapshots instead
// of evicting the oldest buffered one. Use when observers care about the
// earliest unprocessed snapshot rather than the latest.
func WithDropNewest() SubscribeOption {
	return func(c *subConfig) {
		c.dropNewest = true
	}
}

// WithThrottle limits delivery to the given number of snapshots per second.
// Snapshots above the rate are discarded, which suits repaint triggers that
// only ever need a recent value.
func WithThrottle(perSecond float64) SubscribeOption {
	return func(c *subConfig) {
		c.throttle = perSecond
	}
}

// WithDebounce coalesces bursts: delivery waits until d has passed without
// a new snapshot, then forwards only the latest one. Use for observers that
// want the settled transform after a gesture, not every intermediate step.
func WithDebounce(d time.Duration) SubscribeOption {
	return func(c *subConfig) {
		c.debounce = d
	}
}

// subscriber is one fan-out endpoint of the broadcast stream.
type subscriber struct {
	ch         chan ViewState
	dropNewest bool
}

// deliver pushes a snapshot without ever blocking the publisher. When the
// buffer is full the oldest snapshot is evicted (latest-wins) unless the
// subscriber opted into dropping the newest instead.
func (s *subscriber) deliver(v ViewState) {
	select {
	case s.ch <- v:
		return
	default:
	}
	if s.dropNewest {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

// broadcaster fans committed snapshots out to any number of subscribers.
// The subscriber set is the only shared resource; it is mutated exclusively
// by subscribe, remove, and close under the mutex, and publication iterates
// under the same mutex so no send can race a channel close.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	closed bool

	// replay holds the construction-time snapshot until the first
	// committed change. Subscribers attaching inside that window receive
	// it on attach; that is the one replay the stream ever performs.
	replay *ViewState
}

func newBroadcaster(initial ViewState) *broadcaster {
	first := initial
	return &broadcaster{
		subs:   make(map[int]*subscriber),
		replay: &first,
	}
}

// publish fans a snapshot out to every subscriber and ends the replay
// window.
func (b *broadcaster) publish(v ViewState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.replay = nil
	for _, sub := range b.subs {
		sub.deliver(v)
	}
}

// subscribe attaches a new endpoint, replaying the initial snapshot when
// still inside the replay window.
func (b *broadcaster) subscribe(cfg subConfig) (int, *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s := &subscriber{ch: make(chan ViewState)}
		close(s.ch)
		return -1, s
	}
	s := &subscriber{
		ch:         make(chan ViewState, cfg.buffer),
		dropNewest: cfg.dropNewest,
	}
	if b.replay != nil {
		s.ch <- *b.replay
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = s
	return id, s
}

// remove detaches a subscriber and closes its channel. Reports whether the
// subscriber was still attached.
func (b *broadcaster) remove(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subs[id]
	if !ok {
		return false
	}
	delete(b.subs, id)
	close(sub.ch)
	return true
}

// close detaches every subscriber deterministically so the controller can
// be collected without leaking its stream.
func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.replay = nil
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscription is one observer's view of the snapshot stream. Snapshots
// committed after the subscription was created arrive on States, in commit
// order. The stream never blocks on a slow subscription; snapshots the
// buffer cannot hold are coalesced (see WithDropNewest).
type Subscription struct {
	id     int
	b      *broadcaster
	out    <-chan ViewState
	cancel context.CancelFunc
	detach func()
	once   sync.Once
}

// States returns the channel snapshots are delivered on. The channel is
// closed when the subscription is canceled or the controller is disposed.
func (s *Subscription) States() <-chan ViewState {
	return s.out
}

// Cancel detaches the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.b.remove(s.id) && s.detach != nil {
			s.detach()
		}
	})
}

// newSubscription assembles the delivery pipeline for one subscriber:
// raw fan-out channel, then optional throttle and debounce stages.
func newSubscription(b *broadcaster, cfg subConfig, clock clockz.Clock, detach func()) *Subscription {
	id, sub := b.subscribe(cfg)

	out := (<-chan ViewState)(sub.ch)
	var cancel context.CancelFunc
	if cfg.throttle > 0 || cfg.debounce > 0 {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		if cfg.throttle > 0 {
			out = streamz.NewThrottle[ViewState](cfg.throttle, streamz.RealClock).Process(ctx, out)
		}
		if cfg.debounce > 0 {
			out = debounceStates(ctx, clock, cfg.debounce, out)
		}
	}

	return &Subscription{
		id:     id,
		b:      b,
		out:    out,
		cancel: cancel,
		detach: detach,
	}
}

// debounceStates forwards only the latest snapshot once the input has been
// quiet for d. Pending snapshots are flushed when the input closes.
func debounceStates(ctx context.Context, clock clockz.Clock, d time.Duration, in <-chan ViewState) <-chan ViewState {
	out := make(chan ViewState)

	go func() {
		defer close(out)

		var (
			timer      clockz.Timer
			pending    ViewState
			hasPending bool
		)

		for {
			var timerC <-chan time.Time
			if timer != nil {
				timerC = timer.C()
			}

			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case v, ok := <-in:
				if !ok {
					if hasPending {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				pending = v
				hasPending = true

				if timer == nil {
					timer = clock.NewTimer(d)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C():
						default:
						}
					}
					timer.Reset(d)
				}

			case <-timerC:
				if hasPending {
					select {
					case out <- pending:
					case <-ctx.Done():
						return
					}
					hasPending = false
				}
			}
		}
	}()

	return out
}
