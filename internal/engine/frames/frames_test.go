package frames

import (
	"testing"
	"time"
)

func TestNewRingRejectsShallowDepth(t *testing.T) {
	if _, err := NewRing(1, 4, 4, 0); err == nil {
		t.Error("NewRing(1, ...) = nil error, want depth error")
	}
	if _, err := NewRing(0, 4, 4, 0); err == nil {
		t.Error("NewRing(0, ...) = nil error, want depth error")
	}
}

func TestRingSlotSizes(t *testing.T) {
	r, err := NewRing(3, 39, 9, 128*128)
	if err != nil {
		t.Fatal(err)
	}
	if r.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", r.Depth())
	}

	slot := r.Current()
	if len(slot.Objects) != 39 {
		t.Errorf("len(Objects) = %d, want 39", len(slot.Objects))
	}
	if len(slot.Materials) != 9 {
		t.Errorf("len(Materials) = %d, want 9", len(slot.Materials))
	}
	if len(slot.WavesVB) != 128*128 {
		t.Errorf("len(WavesVB) = %d, want %d", len(slot.WavesVB), 128*128)
	}
}

func TestRingCyclesWithoutBlockingWhileFree(t *testing.T) {
	r, err := NewRing(3, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Never-submitted slots carry a zero fence stamp, so the first
	// revolution never blocks even though nothing was signaled.
	seen := make(map[*Resource]bool)
	for i := 0; i < 3; i++ {
		r.Advance()
		seen[r.Current()] = true
	}
	if len(seen) != 3 {
		t.Errorf("saw %d distinct slots over one revolution, want 3", len(seen))
	}
}

func TestRingSubmitStampsMonotonically(t *testing.T) {
	r, err := NewRing(2, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	var last uint64
	for i := 0; i < 5; i++ {
		r.Advance()
		v := r.Submit()
		if v != last+1 {
			t.Fatalf("Submit() = %d after %d, want %d", v, last, last+1)
		}
		last = v
		r.Fence().Signal(v)
	}
}

func TestRingBlocksWhenRendererFallsBehind(t *testing.T) {
	r, err := NewRing(3, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Fill every slot without signaling anything.
	var stamps []uint64
	for i := 0; i < 3; i++ {
		r.Advance()
		stamps = append(stamps, r.Submit())
	}

	// The fourth Advance revisits the first slot and must wait for its
	// stamped fence value.
	done := make(chan struct{})
	go func() {
		r.Advance()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Advance returned before the slot's fence was signaled")
	case <-time.After(50 * time.Millisecond):
	}

	r.Fence().Signal(stamps[0])
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Advance did not return after the fence was signaled")
	}
}

func TestFenceCompletedNeverRegresses(t *testing.T) {
	f := NewFence()
	f.Signal(5)
	f.Signal(3)
	if got := f.Completed(); got != 5 {
		t.Errorf("Completed() = %d after Signal(5) then Signal(3), want 5", got)
	}
}

func TestFenceWaitForAlreadyCompleted(t *testing.T) {
	f := NewFence()
	f.Signal(7)

	done := make(chan struct{})
	go func() {
		f.WaitFor(4)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitFor(4) blocked although 7 was already completed")
	}
}
