package gimbal

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// Offset is a 2D point or vector in screen-space pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the vector sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the vector difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// String returns a compact representation like "(10, 5)".
func (o Offset) String() string {
	return fmt.Sprintf("(%g, %g)", o.X, o.Y)
}

// FocusPoint is an optional coordinate in the content's own coordinate
// space, used as the pivot for rotation. Valid reports whether a pivot has
// been supplied; the zero FocusPoint means "no pivot". The Valid-flag shape
// keeps ViewState comparable with ==.
type FocusPoint struct {
	Offset Offset
	Valid  bool
}

// FocusAt returns a valid FocusPoint at the given coordinate.
func FocusAt(o Offset) FocusPoint {
	return FocusPoint{Offset: o, Valid: true}
}

// String returns the pivot coordinate, or "unset" when no pivot is set.
func (f FocusPoint) String() string {
	if !f.Valid {
		return "unset"
	}
	return f.Offset.String()
}

// ScaleUnset marks a snapshot whose scale has not been resolved yet.
// A set scale is strictly positive, so zero is unambiguous. Resolution of
// the unset scale belongs to the zoom policy layer, not to this package.
const ScaleUnset float64 = 0

// ViewState is an immutable snapshot of a viewer's transform: translation,
// scale, rotation, rotation pivot, and the current zoom lifecycle tag.
//
// ViewState is a pure value. Controllers never mutate a snapshot in place;
// every accepted change constructs a fresh one. Two snapshots are equal iff
// all five fields are equal, and equality is what gates whether a mutation
// counts as a real change.
type ViewState struct {
	// Position is the screen-space translation of the content.
	Position Offset

	// Scale is the zoom factor, or ScaleUnset until resolved.
	Scale float64

	// Rotation is the rotation angle in radians. The domain is
	// unrestricted; callers may wrap it (see UseRotationWrap).
	Rotation float64

	// RotationFocusPoint is the optional pivot for the rotation, in the
	// content's own coordinate space.
	RotationFocusPoint FocusPoint

	// ScaleState tags the current step of the zoom-gesture lifecycle.
	// Its transition rules live outside this package; here it is only
	// stored and compared.
	ScaleState ScaleState
}

// HasScale reports whether the scale has been resolved.
func (s ViewState) HasScale() bool {
	return s.Scale != ScaleUnset
}

// Equal reports structural equality across all five fields.
func (s ViewState) Equal(other ViewState) bool {
	return s == other
}

// Hash returns a hash consistent with Equal: structurally equal snapshots
// hash identically.
func (s ViewState) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range []float64{
		s.Position.X, s.Position.Y,
		s.Scale, s.Rotation,
		s.RotationFocusPoint.Offset.X, s.RotationFocusPoint.Offset.Y,
	} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:]) //nolint:errcheck // fnv never fails
	}
	var tag [2]byte
	if s.RotationFocusPoint.Valid {
		tag[0] = 1
	}
	tag[1] = byte(s.ScaleState)
	h.Write(tag[:]) //nolint:errcheck // fnv never fails
	return h.Sum64()
}

// String returns a readable summary of the snapshot.
func (s ViewState) String() string {
	scale := "unset"
	if s.HasScale() {
		scale = fmt.Sprintf("%g", s.Scale)
	}
	return fmt.Sprintf("ViewState(position=%s scale=%s rotation=%g focus=%s state=%s)",
		s.Position, scale, s.Rotation, s.RotationFocusPoint, s.ScaleState)
}
