package core

// load_gate.go serializes load calls.
//
// A load replaces the engine's inventory, so only one may run at a time.
// The gate is a single-slot semaphore: a second caller waits up to maxWait
// for the slot before failing with ErrLoadInProgress. WaitForDrain lets
// shutdown block until a running load completes.

import (
	"context"
	"sync"
	"time"
)

// ErrLoadInProgress is returned when a load could not start because another
// load held the gate for longer than the configured wait.
var ErrLoadInProgress = &Error{Kind: KindPrecondition, Msg: "another load is in progress"}

// DefaultLoadWait is how long a load waits for a running load to finish.
const DefaultLoadWait = 30 * time.Second

// LoadGate allows one load at a time.
type LoadGate struct {
	slot    chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active bool
}

// NewLoadGate creates a gate whose waiters give up after maxWait.
func NewLoadGate(maxWait time.Duration) *LoadGate {
	if maxWait <= 0 {
		maxWait = DefaultLoadWait
	}
	return &LoadGate{
		slot:    make(chan struct{}, 1),
		maxWait: maxWait,
	}
}

// Acquire takes the gate. The caller MUST call Release when done.
func (g *LoadGate) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	select {
	case g.slot <- struct{}{}:
		g.setActive(true)
		return nil
	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own timeout
		if err := ctx.Err(); err != nil {
			return cancelledError("load", err)
		}
		return withOp(ErrLoadInProgress, "load")
	}
}

// TryAcquire takes the gate without blocking.
func (g *LoadGate) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		g.setActive(true)
		return true
	default:
		return false
	}
}

// Release frees the gate. Must be called exactly once per successful Acquire.
func (g *LoadGate) Release() {
	g.setActive(false)
	<-g.slot
}

// Active reports whether a load currently holds the gate.
func (g *LoadGate) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

// WaitForDrain blocks until no load holds the gate or ctx is done.
func (g *LoadGate) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !g.Active() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (g *LoadGate) setActive(v bool) {
	g.mu.Lock()
	g.active = v
	g.mu.Unlock()
}
