package frames

import "sync"

// Fence is a monotonically increasing completion counter shared between the
// CPU frame loop and whatever executes submitted work (the GPU driver thread,
// or a test goroutine). The CPU stamps frame slots with fence values and later
// waits until the completed value catches up.
type Fence struct {
	mu        sync.Mutex
	cond      *sync.Cond
	completed uint64
}

func NewFence() *Fence {
	f := &Fence{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Signal marks all work up to and including value as complete. Values lower
// than the current completed value are ignored, so out-of-order signals from
// a polling bridge are harmless.
func (f *Fence) Signal(value uint64) {
	f.mu.Lock()
	if value > f.completed {
		f.completed = value
		f.cond.Broadcast()
	}
	f.mu.Unlock()
}

// Completed returns the last completed fence value.
func (f *Fence) Completed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// WaitFor blocks until the completed value reaches value.
func (f *Fence) WaitFor(value uint64) {
	f.mu.Lock()
	for f.completed < value {
		f.cond.Wait()
	}
	f.mu.Unlock()
}
