package gimbal

import (
	"time"

	"github.com/zoobzio/pipz"
)

// WithRetry adds retry capability to the binding.
//
// Failed handler calls are retried up to the specified number of attempts.
// Retries are immediate; for exponential backoff between attempts, use
// WithBackoff instead. The same snapshot is passed to each attempt, and
// retries stop immediately if the context is canceled.
//
// Example:
//
//	binding := gimbal.NewBinding("thumbnail", handler).
//	    WithRetry(3)
func (b *Binding) WithRetry(attempts int) *Binding {
	return &Binding{
		processor: pipz.NewRetry("retry", b.processor, attempts),
		onError:   b.onError,
	}
}

// WithBackoff adds exponential backoff retry to the binding.
//
// Failed handler calls are retried with exponentially increasing delays,
// starting at baseDelay and doubling with each attempt.
//
// Example:
//
//	binding := gimbal.NewBinding("remote-sync", handler).
//	    WithBackoff(5, time.Second)
func (b *Binding) WithBackoff(attempts int, baseDelay time.Duration) *Binding {
	return &Binding{
		processor: pipz.NewBackoff("backoff", b.processor, attempts, baseDelay),
		onError:   b.onError,
	}
}
