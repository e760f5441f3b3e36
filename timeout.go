package gimbal

import (
	"time"

	"github.com/zoobzio/pipz"
)

// WithTimeout adds timeout protection to the binding.
//
// Each snapshot's processing is limited to the specified duration. If the
// handler takes longer, it is canceled and fails with a timeout error.
// This protects the drive loop against a paint that hangs.
//
// The timeout applies to the entire processing pipeline, including any
// retries or other capabilities added after it.
//
// Example:
//
//	binding := gimbal.NewBinding("repaint", handler).
//	    WithTimeout(50 * time.Millisecond)
func (b *Binding) WithTimeout(duration time.Duration) *Binding {
	return &Binding{
		processor: pipz.NewTimeout("timeout", b.processor, duration),
		onError:   b.onError,
	}
}
