package gimbal

import "testing"

func TestScaleState_String_Initial(t *testing.T) {
	if s := ScaleStateInitial.String(); s != "initial" {
		t.Errorf("expected 'initial', got %q", s)
	}
}

func TestScaleState_String_Covering(t *testing.T) {
	if s := ScaleStateCovering.String(); s != "covering" {
		t.Errorf("expected 'covering', got %q", s)
	}
}

func TestScaleState_String_OriginalSize(t *testing.T) {
	if s := ScaleStateOriginalSize.String(); s != "original-size" {
		t.Errorf("expected 'original-size', got %q", s)
	}
}

func TestScaleState_String_ZoomedIn(t *testing.T) {
	if s := ScaleStateZoomedIn.String(); s != "zoomed-in" {
		t.Errorf("expected 'zoomed-in', got %q", s)
	}
}

func TestScaleState_String_ZoomedOut(t *testing.T) {
	if s := ScaleStateZoomedOut.String(); s != "zoomed-out" {
		t.Errorf("expected 'zoomed-out', got %q", s)
	}
}

func TestScaleState_String_Unknown(t *testing.T) {
	unknown := ScaleState(999)
	if s := unknown.String(); s != "unknown" {
		t.Errorf("expected 'unknown', got %q", s)
	}
}

func TestScaleState_Values(t *testing.T) {
	// Verify iota ordering
	if ScaleStateInitial != 0 {
		t.Errorf("expected ScaleStateInitial=0, got %d", ScaleStateInitial)
	}
	if ScaleStateCovering != 1 {
		t.Errorf("expected ScaleStateCovering=1, got %d", ScaleStateCovering)
	}
	if ScaleStateOriginalSize != 2 {
		t.Errorf("expected ScaleStateOriginalSize=2, got %d", ScaleStateOriginalSize)
	}
	if ScaleStateZoomedIn != 3 {
		t.Errorf("expected ScaleStateZoomedIn=3, got %d", ScaleStateZoomedIn)
	}
	if ScaleStateZoomedOut != 4 {
		t.Errorf("expected ScaleStateZoomedOut=4, got %d", ScaleStateZoomedOut)
	}
}
