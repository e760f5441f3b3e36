package gimbal

import (
	"context"

	"github.com/zoobzio/pipz"
)

// WithFilter adds conditional processing to the binding.
//
// Snapshots are only handed to the handler if they pass the predicate;
// others are silently skipped. Filtering happens before any other
// processing.
//
// Example:
//
//	// Only repaint while a zoom gesture is active
//	binding := gimbal.NewBinding("zoom-hud", handler).
//	    WithFilter(func(s gimbal.ViewState) bool {
//	        return s.ScaleState == gimbal.ScaleStateZoomedIn ||
//	            s.ScaleState == gimbal.ScaleStateZoomedOut
//	    })
func (b *Binding) WithFilter(predicate func(ViewState) bool) *Binding {
	wrapper := func(_ context.Context, s ViewState) bool {
		return predicate(s)
	}
	return &Binding{
		processor: pipz.NewFilter(pipz.Name("filter"), wrapper, b.processor),
		onError:   b.onError,
	}
}
