package gimbal

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key controller events.
type MetricsProvider interface {
	// OnChange is called when a snapshot is committed and published.
	OnChange(op ChangeOp)

	// OnSuppressed is called when an equality-gated write is a no-op.
	// Suppression is a deliberate optimization, not a failure.
	OnSuppressed()

	// OnReject is called when middleware vetoes a mutation.
	OnReject()

	// OnReset is called when the controller resets to its initial snapshot.
	OnReset()

	// OnSubscribe is called when a stream subscription is created.
	OnSubscribe()

	// OnUnsubscribe is called when a stream subscription is canceled.
	OnUnsubscribe()

	// OnDispose is called when the controller is torn down.
	OnDispose()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnChange(_ ChangeOp) {}
func (NoOpMetricsProvider) OnSuppressed()       {}
func (NoOpMetricsProvider) OnReject()           {}
func (NoOpMetricsProvider) OnReset()            {}
func (NoOpMetricsProvider) OnSubscribe()        {}
func (NoOpMetricsProvider) OnUnsubscribe()      {}
func (NoOpMetricsProvider) OnDispose()          {}
