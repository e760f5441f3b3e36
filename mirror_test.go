package gimbal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestMirror_BasicJSON(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"position": {"x": 10, "y": 5}, "scale": 2, "rotation": 0.5, "scale_state": 3}`)

	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	cur := c.Current()
	if cur.Position != (Offset{X: 10, Y: 5}) {
		t.Errorf("expected (10, 5), got %s", cur.Position)
	}
	if cur.Scale != 2 {
		t.Errorf("expected scale 2, got %g", cur.Scale)
	}
	if cur.Rotation != 0.5 {
		t.Errorf("expected rotation 0.5, got %g", cur.Rotation)
	}
	if cur.ScaleState != ScaleStateZoomedIn {
		t.Errorf("expected zoomed-in, got %s", cur.ScaleState)
	}
	if mirror.State() != MirrorLive {
		t.Errorf("expected live, got %s", mirror.State())
	}
}

func TestMirror_BasicYAML(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode().Codec(YAMLCodec{})

	ch <- []byte("position:\n  x: 3\n  y: 4\nscale: 1.5\nrotation: 0\nscale_state: 1")

	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if c.Position() != (Offset{X: 3, Y: 4}) {
		t.Errorf("expected (3, 4), got %s", c.Position())
	}
	if c.ScaleState() != ScaleStateCovering {
		t.Errorf("expected covering, got %s", c.ScaleState())
	}
}

func TestMirror_FocusPointApplied(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"position": {"x": 0, "y": 0}, "scale": 1, "rotation": 1, "rotation_focus_point": {"x": 8, "y": 9}, "scale_state": 0}`)

	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	got := c.RotationFocusPoint()
	if !got.Valid {
		t.Fatal("expected a valid pivot")
	}
	if got.Offset != (Offset{X: 8, Y: 9}) {
		t.Errorf("expected pivot (8, 9), got %s", got.Offset)
	}
}

func TestMirror_InvalidInitialPayload(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"scale": -1}`)

	if err := mirror.Start(ctx); err == nil {
		t.Fatal("expected error for negative scale")
	}
	if mirror.State() != MirrorEmpty {
		t.Errorf("expected empty, got %s", mirror.State())
	}
	if mirror.LastError() == nil {
		t.Error("expected LastError to be set")
	}
	// The controller keeps its construction-time snapshot.
	if !c.Current().Equal(c.Initial()) {
		t.Errorf("controller must stay untouched, got %s", c.Current())
	}
}

func TestMirror_DegradedAfterLive(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"position": {"x": 1, "y": 1}, "scale": 2, "rotation": 0, "scale_state": 0}`)
	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`not json`)
	if !mirror.Process(ctx) {
		t.Fatal("expected Process to consume the payload")
	}

	if mirror.State() != MirrorDegraded {
		t.Errorf("expected degraded, got %s", mirror.State())
	}
	// The last good transform stays in place.
	if c.Position() != (Offset{X: 1, Y: 1}) {
		t.Errorf("expected (1, 1), got %s", c.Position())
	}
}

func TestMirror_RecoverFromDegraded(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 3)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"position": {"x": 1, "y": 1}, "scale": 1, "rotation": 0, "scale_state": 0}`)
	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`{"scale_state": 99}`)
	mirror.Process(ctx)
	if mirror.State() != MirrorDegraded {
		t.Fatalf("expected degraded, got %s", mirror.State())
	}

	ch <- []byte(`{"position": {"x": 2, "y": 2}, "scale": 1, "rotation": 0, "scale_state": 0}`)
	mirror.Process(ctx)

	if mirror.State() != MirrorLive {
		t.Errorf("expected live after recovery, got %s", mirror.State())
	}
	if mirror.LastError() != nil {
		t.Errorf("expected LastError cleared, got %v", mirror.LastError())
	}
	if c.Position() != (Offset{X: 2, Y: 2}) {
		t.Errorf("expected (2, 2), got %s", c.Position())
	}
}

func TestMirror_CannotStartTwice(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ch <- []byte(`{"position": {"x": 0, "y": 0}, "scale": 1, "rotation": 0, "scale_state": 0}`)
	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := mirror.Start(ctx); err == nil {
		t.Error("expected error on second Start")
	}
}

func TestMirror_ProcessNotAvailableWithoutSyncMode(t *testing.T) {
	ch := make(chan []byte, 1)
	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch))
	if mirror.Process(context.Background()) {
		t.Error("Process should be a no-op outside sync mode")
	}
}

func TestMirror_SourceClosedBeforeStart(t *testing.T) {
	ch := make(chan []byte)
	close(ch)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()
	if err := mirror.Start(context.Background()); err == nil {
		t.Error("expected error when the source closes before the first snapshot")
	}
}

func TestMirror_ContextCancellationBeforeValue(t *testing.T) {
	ch := make(chan []byte)

	c := New()
	defer c.Dispose()

	mirror := NewMirror(c, NewSyncChannelSource(ch)).SyncMode()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := mirror.Start(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestMirror_Debounce_CoalescesRapidChanges(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte, 10)
	ch <- []byte(`{"position": {"x": 1, "y": 0}, "scale": 1, "rotation": 0, "scale_state": 0}`)

	var applied atomic.Int64
	c := New()
	defer c.Dispose()
	unsubscribe := c.AddListener(func() { applied.Add(1) })
	defer unsubscribe()

	mirror := NewMirror(c, NewChannelSource(ch)).
		Debounce(100 * time.Millisecond).
		Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Initial value applied immediately, no debounce on the first.
	if applied.Load() != 1 {
		t.Errorf("expected 1 apply after start, got %d", applied.Load())
	}

	ch <- []byte(`{"position": {"x": 2, "y": 0}, "scale": 1, "rotation": 0, "scale_state": 0}`)
	ch <- []byte(`{"position": {"x": 3, "y": 0}, "scale": 1, "rotation": 0, "scale_state": 0}`)
	ch <- []byte(`{"position": {"x": 4, "y": 0}, "scale": 1, "rotation": 0, "scale_state": 0}`)

	// Allow the watch goroutine to receive the burst
	time.Sleep(10 * time.Millisecond)

	if applied.Load() != 1 {
		t.Errorf("expected still 1 apply while debouncing, got %d", applied.Load())
	}

	clock.Advance(150 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)

	if applied.Load() != 2 {
		t.Errorf("expected 2 applies after debounce, got %d", applied.Load())
	}
	if c.Position() != (Offset{X: 4, Y: 0}) {
		t.Errorf("expected the latest position (4, 0), got %s", c.Position())
	}
}

func TestMirror_OnStopCalledWhenSourceCloses(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte(`{"position": {"x": 1, "y": 1}, "scale": 1, "rotation": 0, "scale_state": 0}`)

	c := New()
	defer c.Dispose()

	stopped := make(chan MirrorState, 1)
	mirror := NewMirror(c, NewChannelSource(ch)).
		OnStop(func(s MirrorState) { stopped <- s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mirror.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	close(ch)

	select {
	case s := <-stopped:
		if s != MirrorLive {
			t.Errorf("expected final state live, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnStop")
	}
}

func TestMirrorState_String(t *testing.T) {
	cases := []struct {
		state MirrorState
		want  string
	}{
		{MirrorLoading, "loading"},
		{MirrorLive, "live"},
		{MirrorDegraded, "degraded"},
		{MirrorEmpty, "empty"},
		{MirrorState(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("MirrorState(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}
