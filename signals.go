package gimbal

import "github.com/zoobzio/capitan"

// Controller lifecycle signals.
var (
	// ControllerCreated is emitted when a controller is constructed.
	ControllerCreated = capitan.NewSignal(
		"gimbal.controller.created",
		"Controller constructed with its initial snapshot",
	)

	// ControllerDisposed is emitted when a controller is torn down.
	ControllerDisposed = capitan.NewSignal(
		"gimbal.controller.disposed",
		"Controller disposed, stream closed",
	)
)

// Change signals.
var (
	// StateChanged is emitted for every committed snapshot replacement.
	StateChanged = capitan.NewSignal(
		"gimbal.state.changed",
		"Snapshot replaced and published",
	)

	// StateReset is emitted when a controller resets to its initial
	// snapshot. A StateChanged for the same commit follows.
	StateReset = capitan.NewSignal(
		"gimbal.state.reset",
		"Controller reset to initial snapshot",
	)

	// ChangeRejected is emitted when middleware vetoes a mutation. The
	// current snapshot stays in place and nothing is published.
	ChangeRejected = capitan.NewSignal(
		"gimbal.change.rejected",
		"Middleware vetoed a mutation",
	)
)

// Stream signals.
var (
	// SubscriberAttached is emitted when a stream subscription is created.
	SubscriberAttached = capitan.NewSignal(
		"gimbal.stream.subscribed",
		"Stream subscriber attached",
	)

	// SubscriberDetached is emitted when a stream subscription is canceled.
	SubscriberDetached = capitan.NewSignal(
		"gimbal.stream.unsubscribed",
		"Stream subscriber detached",
	)
)

// Mirror signals.
var (
	// MirrorStarted is emitted when a Mirror begins watching its source.
	MirrorStarted = capitan.NewSignal(
		"gimbal.mirror.started",
		"Mirror watching started",
	)

	// MirrorStopped is emitted when a Mirror stops watching.
	MirrorStopped = capitan.NewSignal(
		"gimbal.mirror.stopped",
		"Mirror watching stopped",
	)

	// MirrorStateChanged is emitted when a Mirror transitions between states.
	MirrorStateChanged = capitan.NewSignal(
		"gimbal.mirror.state.changed",
		"Mirror state transition",
	)

	// MirrorApplied is emitted when an external snapshot is applied to
	// the controller.
	MirrorApplied = capitan.NewSignal(
		"gimbal.mirror.applied",
		"External snapshot applied",
	)

	// MirrorApplyFailed is emitted when an external snapshot cannot be
	// decoded or fails validation.
	MirrorApplyFailed = capitan.NewSignal(
		"gimbal.mirror.apply.failed",
		"External snapshot rejected",
	)
)
