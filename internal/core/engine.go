package core

// engine.go holds the session state: one inventory snapshot.
//
// Loads publish a new snapshot under the write lock; queries and reports
// read the current snapshot under the read lock and work on it without
// holding the lock, since a snapshot is never mutated after publication.

import (
	"context"
	"sync"
	"time"
)

// Engine owns the current inventory and exposes the engine operations.
type Engine struct {
	loader *Loader
	gate   *LoadGate

	mu       sync.RWMutex
	inv      Inventory
	last     LoadSummary
	hasLast  bool
	loadedAt time.Time
}

// NewEngine creates an engine with an empty inventory.
func NewEngine(loader *Loader, loadWait time.Duration) *Engine {
	return &Engine{
		loader: loader,
		gate:   NewLoadGate(loadWait),
		inv:    Inventory{},
	}
}

// Load reads dir and, if at least one file was accepted, replaces the
// current inventory. A load that accepts nothing leaves the previous
// inventory in place.
func (e *Engine) Load(ctx context.Context, dir string) (Inventory, LoadSummary, error) {
	if err := e.gate.Acquire(ctx); err != nil {
		return Inventory{}, LoadSummary{Directory: dir}, err
	}
	defer e.gate.Release()

	inv, summary, err := e.loader.Load(ctx, dir)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = summary
	e.hasLast = true
	if err != nil {
		return inv, summary, err
	}
	if summary.Accepted > 0 {
		e.inv = inv
		e.loadedAt = time.Now()
	}
	return inv, summary, nil
}

// Inventory returns the current snapshot.
func (e *Engine) Inventory() Inventory {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inv
}

// LastLoad returns the summary of the most recent load attempt.
func (e *Engine) LastLoad() (LoadSummary, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last, e.hasLast
}

// LoadedAt returns when the current inventory was published.
func (e *Engine) LoadedAt() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loadedAt
}

// Loading reports whether a load is running.
func (e *Engine) Loading() bool {
	return e.gate.Active()
}

// WaitForLoads blocks until a running load completes or ctx is done.
func (e *Engine) WaitForLoads(ctx context.Context) error {
	return e.gate.WaitForDrain(ctx)
}

// All returns every record of the current inventory.
func (e *Engine) All() (Inventory, error) {
	return e.Inventory().All()
}

// SearchByName filters the current inventory by product name.
func (e *Engine) SearchByName(term string) (Inventory, error) {
	return e.Inventory().SearchByName(term)
}

// FilterByCategory filters the current inventory by category.
func (e *Engine) FilterByCategory(term string) (Inventory, error) {
	return e.Inventory().FilterByCategory(term)
}

// FilterByPriceRange filters the current inventory by unit price.
func (e *Engine) FilterByPriceRange(min, max float64) (Inventory, error) {
	return e.Inventory().FilterByPriceRange(min, max)
}

// FilterByQuantityRange filters the current inventory by quantity.
func (e *Engine) FilterByQuantityRange(min, max int) (Inventory, error) {
	return e.Inventory().FilterByQuantityRange(min, max)
}

// Report computes the category report of the current inventory.
func (e *Engine) Report() (CategoryReport, error) {
	return e.Inventory().Report()
}

// ExportReport writes report to path.
func (e *Engine) ExportReport(report CategoryReport, path string) error {
	return ExportReport(report, path)
}
