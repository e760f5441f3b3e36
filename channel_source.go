package gimbal

import "context"

// ChannelSource wraps an existing byte channel as a Source.
// Useful for testing and custom suppliers that already produce bytes.
type ChannelSource struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelSource creates a ChannelSource that forwards values from the
// given channel through an internal goroutine.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: false}
}

// NewSyncChannelSource creates a ChannelSource that returns the source
// channel directly without an intermediate goroutine.
// Use with SyncMode() for deterministic testing.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (s *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if s.sync {
		return s.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
