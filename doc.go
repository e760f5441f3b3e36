/*
Package gimbal provides the observable state core behind interactive
pan/zoom/rotate viewers: a single authoritative ViewState value object,
owned by a controller that enforces change semantics and broadcasts every
accepted change to any number of observers.

# Controller

A ViewController owns one current/previous/initial snapshot triple and
funnels every mutation through the same path:

	setter or Update → equality gate → middleware → swap → publish

Single-field setters suppress writes whose value equals the current one, so
gesture code that recomputes-but-does-not-change a field produces no
notifications. The batched Update commits several fields as one snapshot
with exactly one publication, so a two-finger pan-zoom-rotate is observed
as one atomic transform rather than a torn sequence. Reset restores the
initial snapshot and always publishes.

# Observation

Two mechanisms hang off a single internal fan-out:

  - Subscribe returns a Subscription delivering full snapshots on a
    channel, with per-observer buffering and latest-wins coalescing so a
    slow observer never blocks publication or the next gesture. Throttle
    and debounce options cover observers that coalesce on their own side.
  - AddListener registers a zero-payload callback; the consumer re-reads
    Current. This is the low-level notification bridge familiar from UI
    toolkit controllers.

Dispose closes the stream deterministically. Using a disposed controller is
a programming error and panics.

# Middleware

Construction-time middleware (pipz) runs on every mutation after the
equality gate and before the commit:

	controller := gimbal.New(
	    gimbal.WithMiddleware(
	        gimbal.UseScaleBounds(0.5, 8),
	        gimbal.UseRotationWrap(),
	    ),
	)

A middleware error vetoes the mutation: the current snapshot stays live,
nothing is published, and the rejection is recorded (LastError,
RejectionHistory) and signalled.

# Mirror

A Mirror drives a controller from an external snapshot source (a file
watched with fsnotify, or any Source implementation) with decode,
validation, debouncing, and rollback-on-failure. This supports linked
viewers and session restore:

	mirror := gimbal.NewMirror(controller, gimbal.NewFileSource("view.yaml"))
	if err := mirror.Start(ctx); err != nil {
	    log.Printf("initial snapshot failed: %v", err)
	}

# Binding

A Binding wraps a consumer-side handler with resilience capabilities and
pumps a Subscription through it:

	binding := gimbal.NewBinding("repaint", paint).
	    WithRateLimitDrop(60, 1).
	    WithTimeout(50 * time.Millisecond)
	go binding.Drive(ctx, controller.Subscribe())

# Observability

Capitan signals cover the controller and mirror lifecycles; a
MetricsProvider interface integrates with metrics systems.

The package is built on top of:
  - pipz: for composable change and handler pipelines
  - streamz: for channel-based subscription processing
  - capitan: for typed observability signals
  - clockz: for testable time
*/
package gimbal
