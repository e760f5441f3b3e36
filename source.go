package gimbal

import "context"

// Source observes an external snapshot supply and emits raw bytes on a
// channel. Implementations must emit the current value immediately upon
// Watch() being called, so a Mirror can apply an initial snapshot.
type Source interface {
	// Watch begins observing the source and returns a channel that emits
	// raw snapshot bytes when changes occur. The channel is closed when
	// the context is canceled or an unrecoverable error occurs.
	//
	// Implementations should emit the current value immediately to
	// support initial snapshot loading.
	Watch(ctx context.Context) (<-chan []byte, error)
}
