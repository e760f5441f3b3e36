package gimbal

import "github.com/zoobzio/pipz"

// WithRateLimit adds rate limiting capability to the binding.
//
// Processing is limited to the specified rate per second with the given
// burst capacity; when tokens are exhausted, processing waits for capacity.
// For repaint loops that only ever need a recent snapshot, prefer
// WithRateLimitDrop so stale frames are discarded instead of queued.
//
// Parameters:
//   - rps: snapshots per second (sustained rate)
//   - burst: maximum burst size above the sustained rate
//
// Example:
//
//	// Cap repaints at 60 per second
//	binding := gimbal.NewBinding("repaint", handler).
//	    WithRateLimitDrop(60, 1)
func (b *Binding) WithRateLimit(rps float64, burst int) *Binding {
	limiter := pipz.NewRateLimiter[ViewState]("rate-limit", rps, burst)
	return &Binding{
		processor: pipz.NewSequence("rate-limited", limiter, b.processor),
		onError:   b.onError,
	}
}

// WithRateLimitDrop adds rate limiting that drops snapshots when limited.
//
// Similar to WithRateLimit but configured to drop snapshots immediately
// when the rate limit is exceeded instead of waiting for capacity.
func (b *Binding) WithRateLimitDrop(rps float64, burst int) *Binding {
	limiter := pipz.NewRateLimiter[ViewState]("rate-limit", rps, burst).SetMode("drop")
	return &Binding{
		processor: pipz.NewSequence("rate-limited", limiter, b.processor),
		onError:   b.onError,
	}
}
