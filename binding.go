package gimbal

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Binding wraps a consumer-side snapshot handler with synchronization
// primitives: rate limiting, retries, timeouts, filtering. It models the
// rendering collaborator's repaint path, where a burst of gesture-driven
// snapshots must not translate into a burst of expensive paints.
type Binding struct {
	processor pipz.Chainable[ViewState]
	onError   func(error)
}

// NewBinding creates a synchronization wrapper for a snapshot handler.
//
// The name identifies the binding in error messages and debugging output.
// The handler is called for each snapshot processed through the binding.
//
// Example:
//
//	binding := gimbal.NewBinding("repaint", func(ctx context.Context, s gimbal.ViewState) error {
//	    return surface.Paint(ctx, s)
//	}).WithRateLimitDrop(60, 1)
func NewBinding(name string, handler func(context.Context, ViewState) error) *Binding {
	return &Binding{
		processor: pipz.Effect(pipz.Name(name), handler),
	}
}

// OnError sets a callback observing handler failures during Drive.
// Failures do not stop the drive loop; without a callback they are dropped.
func (b *Binding) OnError(fn func(error)) *Binding {
	b.onError = fn
	return b
}

// Process runs one snapshot through the binding's pipeline.
func (b *Binding) Process(ctx context.Context, s ViewState) error {
	_, err := b.processor.Process(ctx, s)
	return err
}

// Drive pumps a subscription through the binding until the subscription's
// channel closes or the context is canceled. The subscription is canceled
// on return. Handler failures are reported to OnError and do not stop the
// loop.
func (b *Binding) Drive(ctx context.Context, sub *Subscription) error {
	defer sub.Cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-sub.States():
			if !ok {
				return nil
			}
			if err := b.Process(ctx, s); err != nil && b.onError != nil {
				b.onError(err)
			}
		}
	}
}

// Name returns the name of the underlying processor.
func (b *Binding) Name() pipz.Name {
	return b.processor.Name()
}
