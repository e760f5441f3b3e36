package gimbal

// Field specifies one field of a batched update. Fields left unspecified
// keep their value from the current snapshot, and however many fields an
// update touches, the result is observed as a single atomic snapshot.
//
// Example:
//
//	// A two-finger gesture moves, zooms, and rotates at once; the
//	// rendering layer must never see a torn intermediate transform.
//	controller.Update(
//	    gimbal.WithPosition(gimbal.Offset{X: 12, Y: -4}),
//	    gimbal.WithScale(2.0),
//	    gimbal.WithRotation(0.35),
//	)
type Field func(*ViewState)

// WithPosition sets the screen-space translation.
func WithPosition(o Offset) Field {
	return func(s *ViewState) {
		s.Position = o
	}
}

// WithScale sets the zoom factor. Pass ScaleUnset to hand resolution back
// to the zoom policy layer.
func WithScale(scale float64) Field {
	return func(s *ViewState) {
		s.Scale = scale
	}
}

// WithRotation sets the rotation angle in radians.
func WithRotation(rotation float64) Field {
	return func(s *ViewState) {
		s.Rotation = rotation
	}
}

// WithFocusPoint sets the rotation pivot.
func WithFocusPoint(o Offset) Field {
	return func(s *ViewState) {
		s.RotationFocusPoint = FocusAt(o)
	}
}

// WithoutFocusPoint clears the rotation pivot.
func WithoutFocusPoint() Field {
	return func(s *ViewState) {
		s.RotationFocusPoint = FocusPoint{}
	}
}

// WithScaleState sets the zoom lifecycle tag.
func WithScaleState(state ScaleState) Field {
	return func(s *ViewState) {
		s.ScaleState = state
	}
}
