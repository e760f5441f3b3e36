package gimbal

import "testing"

func TestFields_ApplyToSnapshot(t *testing.T) {
	s := ViewState{
		Position:   Offset{X: 1, Y: 1},
		Scale:      1,
		Rotation:   1,
		ScaleState: ScaleStateOriginalSize,
	}

	for _, f := range []Field{
		WithPosition(Offset{X: 2, Y: 3}),
		WithScale(4),
		WithRotation(0.25),
		WithFocusPoint(Offset{X: 5, Y: 6}),
		WithScaleState(ScaleStateCovering),
	} {
		f(&s)
	}

	if s.Position != (Offset{X: 2, Y: 3}) {
		t.Errorf("expected position (2, 3), got %s", s.Position)
	}
	if s.Scale != 4 {
		t.Errorf("expected scale 4, got %g", s.Scale)
	}
	if s.Rotation != 0.25 {
		t.Errorf("expected rotation 0.25, got %g", s.Rotation)
	}
	if !s.RotationFocusPoint.Valid || s.RotationFocusPoint.Offset != (Offset{X: 5, Y: 6}) {
		t.Errorf("expected pivot (5, 6), got %s", s.RotationFocusPoint)
	}
	if s.ScaleState != ScaleStateCovering {
		t.Errorf("expected covering, got %s", s.ScaleState)
	}
}

func TestWithScale_UnsetHandsBackResolution(t *testing.T) {
	s := ViewState{Scale: 3}
	WithScale(ScaleUnset)(&s)
	if s.HasScale() {
		t.Errorf("expected unset scale, got %g", s.Scale)
	}
}

func TestWithoutFocusPoint_Clears(t *testing.T) {
	s := ViewState{RotationFocusPoint: FocusAt(Offset{X: 1, Y: 1})}
	WithoutFocusPoint()(&s)
	if s.RotationFocusPoint.Valid {
		t.Error("expected pivot cleared")
	}
}
