package gimbal

import (
	"context"
	"math"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// config holds configuration options for a controller.
type config struct {
	initialPosition Offset
	initialRotation float64
	processors      []pipz.Chainable[*Change]
	metrics         MetricsProvider
	clock           clockz.Clock
	historySize     int
}

// Option configures a controller at construction time.
type Option func(*config)

// WithInitialPosition sets the construction-time translation.
// Default: zero offset.
func WithInitialPosition(o Offset) Option {
	return func(c *config) {
		c.initialPosition = o
	}
}

// WithInitialRotation sets the construction-time rotation in radians.
// Default: zero.
func WithInitialRotation(rotation float64) Option {
	return func(c *config) {
		c.initialRotation = rotation
	}
}

// WithMetrics sets a metrics provider for observability integration.
// The provider receives callbacks on every commit, suppression, rejection,
// and lifecycle event.
func WithMetrics(provider MetricsProvider) Option {
	return func(c *config) {
		c.metrics = provider
	}
}

// WithClock sets a custom clock for subscription debouncing.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithRejectionHistory sets the number of recent middleware rejections to
// retain. When set, RejectionHistory() returns up to this many recent
// errors. Use 0 (default) to only retain the most recent via LastError().
func WithRejectionHistory(n int) Option {
	return func(c *config) {
		c.historySize = n
	}
}

// WithMiddleware runs a sequence of processors on every mutation after the
// equality gate and before the snapshot is committed. Processors execute in
// order; a processor error vetoes the mutation, leaving the current
// snapshot in place and publishing nothing.
//
// Use the Use* adapters for common patterns, or provide custom
// pipz.Chainable implementations directly.
//
// Example:
//
//	controller := gimbal.New(
//	    gimbal.WithMiddleware(
//	        gimbal.UseScaleBounds(0.5, 8),
//	        gimbal.UseEffect("audit", auditFn),
//	    ),
//	)
func WithMiddleware(processors ...pipz.Chainable[*Change]) Option {
	return func(c *config) {
		c.processors = append(c.processors, processors...)
	}
}

// buildPipeline assembles the middleware chain, or nil when none is
// configured.
func buildPipeline(processors []pipz.Chainable[*Change]) pipz.Chainable[*Change] {
	switch len(processors) {
	case 0:
		return nil
	case 1:
		return processors[0]
	default:
		return pipz.NewSequence("middleware", processors...)
	}
}

// -----------------------------------------------------------------------------
// Middleware Processors - Adapters (Use*)
// -----------------------------------------------------------------------------

// UseTransform creates a processor that rewrites the change.
// Cannot fail. Use for pure adjustments that always succeed.
func UseTransform(name string, fn func(context.Context, *Change) *Change) pipz.Chainable[*Change] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can rewrite the change and fail.
// A returned error vetoes the mutation.
func UseApply(name string, fn func(context.Context, *Change) (*Change, error)) pipz.Chainable[*Change] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect. The change
// passes through unchanged; an error vetoes the mutation. Use for audit
// hooks or notifications that must run before a commit.
func UseEffect(name string, fn func(context.Context, *Change) error) pipz.Chainable[*Change] {
	return pipz.Effect(pipz.Name(name), fn)
}

// -----------------------------------------------------------------------------
// Middleware Processors - Domain
// -----------------------------------------------------------------------------

// UseScaleBounds clamps a resolved scale into [min, max]. Snapshots with an
// unset scale pass through untouched.
func UseScaleBounds(minScale, maxScale float64) pipz.Chainable[*Change] {
	return pipz.Transform(pipz.Name("scale-bounds"), func(_ context.Context, ch *Change) *Change {
		if !ch.Current.HasScale() {
			return ch
		}
		if ch.Current.Scale < minScale {
			ch.Current.Scale = minScale
		}
		if ch.Current.Scale > maxScale {
			ch.Current.Scale = maxScale
		}
		return ch
	})
}

// UseRotationWrap normalizes the rotation angle into [0, 2π).
func UseRotationWrap() pipz.Chainable[*Change] {
	return pipz.Transform(pipz.Name("rotation-wrap"), func(_ context.Context, ch *Change) *Change {
		r := math.Mod(ch.Current.Rotation, 2*math.Pi)
		if r < 0 {
			r += 2 * math.Pi
		}
		ch.Current.Rotation = r
		return ch
	})
}
