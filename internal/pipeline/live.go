package pipeline

import "sync/atomic"

// Live holds the runner currently serving requests. A reload swaps in a new
// runner; in-flight builds finish on the one they started with.
type Live struct {
	current atomic.Pointer[Runner]
	version atomic.Uint64
}

// NewLive wraps an initial runner.
func NewLive(r *Runner) *Live {
	l := &Live{}
	l.current.Store(r)
	l.version.Store(1)
	return l
}

// Runner returns the current runner.
func (l *Live) Runner() *Runner { return l.current.Load() }

// Version increments on every swap.
func (l *Live) Version() uint64 { return l.version.Load() }

// Swap installs r and returns the new version.
func (l *Live) Swap(r *Runner) uint64 {
	l.current.Store(r)
	return l.version.Add(1)
}
