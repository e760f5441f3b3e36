package gimbal

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// Controller is the capability surface of a view-transform controller: the
// authoritative owner of a viewer's current ViewState, with equality-gated
// field writes, atomic batched updates, and a broadcast stream of accepted
// changes.
//
// ViewController is the one concrete implementation. Alternate controllers
// (for example ones driven by an external animation engine) implement this
// interface rather than sharing mutable base state.
type Controller interface {
	// Current returns the live snapshot.
	Current() ViewState
	// Previous returns the snapshot immediately before the last accepted
	// change. Right after construction it equals Initial.
	Previous() ViewState
	// Initial returns the construction-time snapshot used by Reset.
	Initial() ViewState

	// Position returns the current screen-space translation.
	Position() Offset
	// SetPosition writes the translation. Writing the current value is a
	// no-op: nothing is replaced or published.
	SetPosition(Offset)
	// Scale returns the current zoom factor, or ScaleUnset.
	Scale() float64
	// SetScale writes the zoom factor, equality-gated like SetPosition.
	SetScale(float64)
	// Rotation returns the current rotation angle in radians.
	Rotation() float64
	// SetRotation writes the rotation angle, equality-gated.
	SetRotation(float64)
	// RotationFocusPoint returns the current rotation pivot.
	RotationFocusPoint() FocusPoint
	// SetRotationFocusPoint writes the rotation pivot, equality-gated.
	SetRotationFocusPoint(FocusPoint)
	// ScaleState returns the current zoom lifecycle tag.
	ScaleState() ScaleState
	// SetScaleState writes the zoom lifecycle tag, equality-gated.
	SetScaleState(ScaleState)

	// Update commits one combined snapshot with the given fields
	// replaced and all others kept from the current snapshot. Unlike the
	// single-field setters there is no equality gate: the assignment
	// always produces exactly one publication, so simultaneous
	// position/scale/rotation gestures are observed as one atomic
	// transform rather than a torn sequence.
	Update(fields ...Field)

	// Reset replaces the current snapshot with the initial one. The
	// assignment always publishes, even when the controller is already
	// at its initial state.
	Reset()

	// AddListener registers a zero-payload callback fired after every
	// committed change; consumers re-read Current. Returns an
	// unsubscribe function.
	AddListener(fn func()) func()

	// Subscribe attaches a new observer to the snapshot stream.
	Subscribe(opts ...SubscribeOption) *Subscription

	// Dispose closes the stream, releases all subscribers and listeners,
	// and makes the controller terminal. Calling it again is a no-op;
	// any other mutation, subscription, or listener registration
	// afterwards panics.
	Dispose()
}

// ViewController owns the authoritative ViewState for one viewer instance.
// Construct it with New, drive it from gesture code through the setters and
// Update, read it from layout code through Current, and tear it down with
// Dispose when the viewer unmounts.
type ViewController struct {
	holder     *stateHolder
	stream     *broadcaster
	pipeline   pipz.Chainable[*Change]
	clock      clockz.Clock
	metrics    MetricsProvider
	rejections *rejectionRing
	lastError  atomic.Pointer[error]

	lmu            sync.Mutex
	listeners      map[int]func()
	nextListenerID int
}

var _ Controller = (*ViewController)(nil)

// New constructs a controller whose initial snapshot has the given position
// and rotation (defaults: zero offset, zero rotation), an unresolved scale,
// no rotation pivot, and ScaleStateInitial. The initial snapshot is
// published to the stream immediately, so an observer that subscribes
// before any gesture still receives a first value.
//
// Example:
//
//	controller := gimbal.New(
//	    gimbal.WithInitialPosition(gimbal.Offset{X: 0, Y: 0}),
//	    gimbal.WithMiddleware(gimbal.UseScaleBounds(0.5, 8)),
//	)
//	defer controller.Dispose()
func New(opts ...Option) *ViewController {
	cfg := &config{clock: clockz.RealClock}
	for _, opt := range opts {
		opt(cfg)
	}

	initial := ViewState{
		Position:   cfg.initialPosition,
		Scale:      ScaleUnset,
		Rotation:   cfg.initialRotation,
		ScaleState: ScaleStateInitial,
	}

	c := &ViewController{
		stream:     newBroadcaster(initial),
		pipeline:   buildPipeline(cfg.processors),
		clock:      cfg.clock,
		metrics:    cfg.metrics,
		rejections: newRejectionRing(cfg.historySize),
		listeners:  make(map[int]func()),
	}
	c.holder = newStateHolder(initial, c.fanout)

	capitan.Emit(context.Background(), ControllerCreated,
		KeyState.Field(initial.String()),
	)

	return c
}

// Current returns the live snapshot.
func (c *ViewController) Current() ViewState {
	return c.holder.get()
}

// Previous returns the snapshot before the last accepted change.
func (c *ViewController) Previous() ViewState {
	return c.holder.prev()
}

// Initial returns the construction-time snapshot.
func (c *ViewController) Initial() ViewState {
	return c.holder.initial
}

// Position returns the current screen-space translation.
func (c *ViewController) Position() Offset {
	return c.holder.get().Position
}

// SetPosition writes the translation, suppressing equal writes.
func (c *ViewController) SetPosition(o Offset) {
	c.commit(OpSet, true, func(cur ViewState) ViewState {
		cur.Position = o
		return cur
	})
}

// Scale returns the current zoom factor, or ScaleUnset.
func (c *ViewController) Scale() float64 {
	return c.holder.get().Scale
}

// SetScale writes the zoom factor, suppressing equal writes.
func (c *ViewController) SetScale(scale float64) {
	c.commit(OpSet, true, func(cur ViewState) ViewState {
		cur.Scale = scale
		return cur
	})
}

// Rotation returns the current rotation angle in radians.
func (c *ViewController) Rotation() float64 {
	return c.holder.get().Rotation
}

// SetRotation writes the rotation angle, suppressing equal writes.
func (c *ViewController) SetRotation(rotation float64) {
	c.commit(OpSet, true, func(cur ViewState) ViewState {
		cur.Rotation = rotation
		return cur
	})
}

// RotationFocusPoint returns the current rotation pivot.
func (c *ViewController) RotationFocusPoint() FocusPoint {
	return c.holder.get().RotationFocusPoint
}

// SetRotationFocusPoint writes the rotation pivot, suppressing equal writes.
func (c *ViewController) SetRotationFocusPoint(f FocusPoint) {
	c.commit(OpSet, true, func(cur ViewState) ViewState {
		cur.RotationFocusPoint = f
		return cur
	})
}

// ScaleState returns the current zoom lifecycle tag.
func (c *ViewController) ScaleState() ScaleState {
	return c.holder.get().ScaleState
}

// SetScaleState writes the zoom lifecycle tag, suppressing equal writes.
func (c *ViewController) SetScaleState(state ScaleState) {
	c.commit(OpSet, true, func(cur ViewState) ViewState {
		cur.ScaleState = state
		return cur
	})
}

// Update commits one combined snapshot, unconditionally.
func (c *ViewController) Update(fields ...Field) {
	c.commit(OpUpdate, false, func(cur ViewState) ViewState {
		for _, f := range fields {
			f(&cur)
		}
		return cur
	})
}

// Reset replaces the current snapshot with the initial one and publishes,
// whether or not anything changed.
func (c *ViewController) Reset() {
	initial := c.holder.initial
	if c.commit(OpReset, false, func(ViewState) ViewState { return initial }) {
		capitan.Emit(context.Background(), StateReset,
			KeyState.Field(initial.String()),
		)
		if c.metrics != nil {
			c.metrics.OnReset()
		}
	}
}

// LastError returns the most recent middleware rejection, or nil.
func (c *ViewController) LastError() error {
	ptr := c.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// RejectionHistory returns recent middleware rejections, oldest first.
// Returns nil unless WithRejectionHistory enabled retention.
func (c *ViewController) RejectionHistory() []error {
	return c.rejections.all()
}

// AddListener registers a zero-payload change callback, in the manner of UI
// toolkit controllers: no snapshot rides along, the consumer re-reads
// Current. Returns an unsubscribe function.
func (c *ViewController) AddListener(fn func()) func() {
	if c.holder.disposed.Load() {
		panic(panicDisposed)
	}
	if fn == nil {
		return func() {}
	}
	c.lmu.Lock()
	defer c.lmu.Unlock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		c.lmu.Lock()
		defer c.lmu.Unlock()
		delete(c.listeners, id)
	}
}

// Subscribe attaches a new observer to the snapshot stream. Each observer
// receives every snapshot committed after it subscribed, in commit order,
// plus the one-time initial-snapshot replay when attaching before the first
// gesture. Slow observers never block publication; see the Subscribe
// options for coalescing behavior.
func (c *ViewController) Subscribe(opts ...SubscribeOption) *Subscription {
	if c.holder.disposed.Load() {
		panic(panicDisposed)
	}
	cfg := subConfig{buffer: DefaultSubscriptionBuffer}
	for _, opt := range opts {
		opt(&cfg)
	}

	sub := newSubscription(c.stream, cfg, c.clock, func() {
		capitan.Emit(context.Background(), SubscriberDetached,
			KeySubscribers.Field(c.stream.count()),
		)
		if c.metrics != nil {
			c.metrics.OnUnsubscribe()
		}
	})

	capitan.Emit(context.Background(), SubscriberAttached,
		KeySubscribers.Field(c.stream.count()),
		KeyBuffer.Field(cfg.buffer),
	)
	if c.metrics != nil {
		c.metrics.OnSubscribe()
	}
	return sub
}

// Dispose tears the controller down: the stream is closed, every
// subscriber channel is closed and released, and listeners are dropped.
// A second Dispose is a no-op. Mutations, subscriptions, and listener
// registrations after Dispose panic.
func (c *ViewController) Dispose() {
	if !c.holder.dispose() {
		return
	}
	c.stream.close()

	c.lmu.Lock()
	c.listeners = nil
	c.lmu.Unlock()

	capitan.Emit(context.Background(), ControllerDisposed)
	if c.metrics != nil {
		c.metrics.OnDispose()
	}
}

// commit funnels every mutation through the holder: equality gate (for
// gated ops), middleware, swap, fan-out. Returns whether a change was
// committed.
func (c *ViewController) commit(op ChangeOp, gated bool, build func(ViewState) ViewState) bool {
	changed, err := c.holder.swap(op, gated, build, c.transform)
	if err != nil {
		c.reject(err)
		return false
	}
	if !changed && c.metrics != nil {
		c.metrics.OnSuppressed()
	}
	return changed
}

// transform runs the middleware pipeline on an outgoing change.
func (c *ViewController) transform(ch *Change) error {
	if c.pipeline == nil {
		return nil
	}
	processed, err := c.pipeline.Process(context.Background(), ch)
	if err != nil {
		return err
	}
	*ch = *processed
	return nil
}

// fanout delivers a committed change to the stream and the listeners. It
// runs inside the holder's critical section, so the snapshot swap and its
// publication appear atomic to observers.
func (c *ViewController) fanout(ch Change) {
	c.stream.publish(ch.Current)
	c.notifyListeners()

	capitan.Emit(context.Background(), StateChanged,
		KeyOp.Field(ch.Op.String()),
		KeyState.Field(ch.Current.String()),
		KeyScaleState.Field(ch.Current.ScaleState.String()),
	)
	if c.metrics != nil {
		c.metrics.OnChange(ch.Op)
	}
}

// reject records a middleware veto. The mutation did not happen; the
// current snapshot stays live.
func (c *ViewController) reject(err error) {
	e := err
	c.lastError.Store(&e)
	c.rejections.push(err)

	capitan.Emit(context.Background(), ChangeRejected,
		KeyError.Field(err.Error()),
	)
	if c.metrics != nil {
		c.metrics.OnReject()
	}
}

func (c *ViewController) notifyListeners() {
	c.lmu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.lmu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
