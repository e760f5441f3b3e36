package gimbal

// ScaleState tags the current step of the zoom-gesture lifecycle.
//
// The tag is opaque to this package: gesture and zoom-policy code decide
// when a viewer moves between steps, controllers only store and compare the
// value.
type ScaleState int

const (
	// ScaleStateInitial is the state a freshly constructed controller
	// starts in, before any zoom gesture has run.
	ScaleStateInitial ScaleState = iota

	// ScaleStateCovering indicates the content is scaled to cover the
	// viewport.
	ScaleStateCovering

	// ScaleStateOriginalSize indicates the content is shown at its own
	// pixel size.
	ScaleStateOriginalSize

	// ScaleStateZoomedIn indicates the content is scaled above its
	// resting scale.
	ScaleStateZoomedIn

	// ScaleStateZoomedOut indicates the content is scaled below its
	// resting scale.
	ScaleStateZoomedOut
)

// String returns the string representation of the scale state.
func (s ScaleState) String() string {
	switch s {
	case ScaleStateInitial:
		return "initial"
	case ScaleStateCovering:
		return "covering"
	case ScaleStateOriginalSize:
		return "original-size"
	case ScaleStateZoomedIn:
		return "zoomed-in"
	case ScaleStateZoomedOut:
		return "zoomed-out"
	default:
		return "unknown"
	}
}
