package gimbal

import "github.com/zoobzio/capitan"

// Field keys for controller and mirror events.
var (
	// KeyOp is the operation that produced a change (set/update/reset).
	KeyOp = capitan.NewStringKey("op")

	// KeyState is the snapshot summary attached to change events.
	KeyState = capitan.NewStringKey("state")

	// KeyScaleState is the zoom lifecycle tag after a change.
	KeyScaleState = capitan.NewStringKey("scale_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeySubscribers is the number of attached stream subscribers.
	KeySubscribers = capitan.NewIntKey("subscribers")

	// KeyBuffer is the configured buffer size of a subscription.
	KeyBuffer = capitan.NewIntKey("buffer")

	// KeyOldState is the previous mirror state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new mirror state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyDebounce is the configured debounce duration of a mirror.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeySourceType is the type name of the mirror source implementation.
	KeySourceType = capitan.NewStringKey("source_type")
)
