package gimbal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultMirrorDebounce is the default debounce duration for external
// snapshot processing.
const DefaultMirrorDebounce = 100 * time.Millisecond

// MirrorState represents the current state of a Mirror.
type MirrorState int32

const (
	// MirrorLoading indicates the Mirror is initializing and has not yet
	// processed any snapshot.
	MirrorLoading MirrorState = iota

	// MirrorLive indicates the last external snapshot was applied to the
	// controller.
	MirrorLive

	// MirrorDegraded indicates the last snapshot failed to decode or
	// validate. The controller keeps its previous transform.
	MirrorDegraded

	// MirrorEmpty indicates the initial snapshot failed and no valid
	// snapshot has ever been applied. The Mirror continues watching.
	MirrorEmpty
)

// String returns the string representation of the mirror state.
func (s MirrorState) String() string {
	switch s {
	case MirrorLoading:
		return "loading"
	case MirrorLive:
		return "live"
	case MirrorDegraded:
		return "degraded"
	case MirrorEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Mirror drives a controller from an external snapshot source: a watched
// file, a channel fed by another viewer, or any Source implementation.
// Each emitted payload is decoded, validated, and applied to the controller
// as one atomic Update; a payload that fails leaves the controller's
// transform untouched while the Mirror keeps watching for valid updates.
type Mirror struct {
	controller Controller
	source     Source
	codec      Codec
	debounce   time.Duration
	syncMode   bool
	clock      clockz.Clock
	onStop     func(MirrorState)

	state     atomic.Int32
	applied   atomic.Bool
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewMirror creates a Mirror that applies snapshots from source to
// controller. Instance configuration uses chainable methods before calling
// Start().
//
// Example:
//
//	mirror := gimbal.NewMirror(controller, gimbal.NewFileSource("view.yaml")).
//	    Codec(gimbal.YAMLCodec{}).
//	    Debounce(50 * time.Millisecond)
func NewMirror(controller Controller, source Source) *Mirror {
	m := &Mirror{
		controller: controller,
		source:     source,
		codec:      JSONCodec{},
		debounce:   DefaultMirrorDebounce,
		clock:      clockz.RealClock,
	}
	m.state.Store(int32(MirrorLoading))
	return m
}

// Debounce sets the debounce duration for snapshot processing. Snapshots
// arriving within this duration are coalesced into a single apply.
// Default: 100ms. Must be called before Start().
func (m *Mirror) Debounce(d time.Duration) *Mirror {
	m.debounce = d
	return m
}

// SyncMode enables synchronous processing for testing. In sync mode,
// snapshots are processed immediately without debouncing or async
// goroutines, making tests deterministic. Must be called before Start().
func (m *Mirror) SyncMode() *Mirror {
	m.syncMode = true
	return m
}

// Clock sets a custom clock for time operations. Use this with
// clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (m *Mirror) Clock(clock clockz.Clock) *Mirror {
	m.clock = clock
	return m
}

// Codec sets the codec for decoding snapshot payloads.
// Default: JSONCodec. Must be called before Start().
func (m *Mirror) Codec(codec Codec) *Mirror {
	m.codec = codec
	return m
}

// OnStop sets a callback invoked when the mirror stops watching, with the
// final state. Must be called before Start().
func (m *Mirror) OnStop(fn func(MirrorState)) *Mirror {
	m.onStop = fn
	return m
}

// State returns the current state of the Mirror.
func (m *Mirror) State() MirrorState {
	return MirrorState(m.state.Load())
}

// LastError returns the last error encountered, or nil.
func (m *Mirror) LastError() error {
	ptr := m.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching for snapshots. It blocks until the first snapshot
// is processed (success or failure), then continues watching
// asynchronously.
//
// If the initial snapshot fails, Start returns the error but continues
// watching in the background for valid updates.
//
// In sync mode, Start only processes the initial value. Use Process() to
// manually trigger processing of subsequent values.
//
// Start can only be called once. Subsequent calls return an error.
func (m *Mirror) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("mirror already started")
	}
	m.started = true
	m.mu.Unlock()

	capitan.Emit(ctx, MirrorStarted,
		KeyDebounce.Field(m.debounce),
		KeySourceType.Field(fmt.Sprintf("%T", m.source)),
	)

	changes, err := m.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	// Wait for first value and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("source closed before emitting initial snapshot")
		}
		initialErr = m.apply(ctx, raw)
	}

	if m.syncMode {
		// In sync mode, store channel for manual processing
		m.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go m.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next value from the source.
// This is only available in sync mode and is used for deterministic
// testing. Returns false if no value is available or the channel is closed.
func (m *Mirror) Process(ctx context.Context) bool {
	if !m.syncMode {
		return false
	}

	select {
	case raw, ok := <-m.changes:
		if !ok {
			return false
		}
		_ = m.apply(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// apply decodes, validates, and commits a single external snapshot.
func (m *Mirror) apply(ctx context.Context, raw []byte) error {
	oldState := m.State()

	next, err := UnmarshalState(m.codec, raw)
	if err != nil {
		m.setError(err)
		m.transitionState(ctx, oldState, m.failureState())
		capitan.Emit(ctx, MirrorApplyFailed,
			KeyError.Field(err.Error()),
		)
		return err
	}

	fields := []Field{
		WithPosition(next.Position),
		WithScale(next.Scale),
		WithRotation(next.Rotation),
		WithScaleState(next.ScaleState),
	}
	if next.RotationFocusPoint.Valid {
		fields = append(fields, WithFocusPoint(next.RotationFocusPoint.Offset))
	} else {
		fields = append(fields, WithoutFocusPoint())
	}
	m.controller.Update(fields...)

	m.applied.Store(true)
	m.lastError.Store(nil)
	m.transitionState(ctx, oldState, MirrorLive)
	capitan.Emit(ctx, MirrorApplied,
		KeyState.Field(next.String()),
	)

	return nil
}

// failureState returns the appropriate failure state based on whether a
// valid snapshot has ever been applied.
func (m *Mirror) failureState() MirrorState {
	if !m.applied.Load() {
		return MirrorEmpty
	}
	return MirrorDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (m *Mirror) transitionState(ctx context.Context, oldState, newState MirrorState) {
	if oldState == newState {
		return
	}
	m.state.Store(int32(newState))
	capitan.Emit(ctx, MirrorStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// setError stores an error atomically.
func (m *Mirror) setError(err error) {
	e := err
	m.lastError.Store(&e)
}

// watch processes snapshots from the source channel with debouncing.
func (m *Mirror) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		finalState := m.State()
		capitan.Emit(ctx, MirrorStopped,
			KeyState.Field(finalState.String()),
		)
		if m.onStop != nil {
			m.onStop(finalState)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
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

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending snapshot
				if hasPending {
					_ = m.apply(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = m.clock.NewTimer(m.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(m.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = m.apply(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
