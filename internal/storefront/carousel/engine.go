package carousel

import (
	"sync"
	"time"
)

// DefaultAutoplayInterval matches the storefront's slide cadence.
const DefaultAutoplayInterval = 3 * time.Second

// Position is a consistent snapshot of the engine state.
type Position struct {
	Current   int
	PageSize  int
	Total     int
	MaxIndex  int
	Suspended bool
}

// Engine owns the bounded index into the displayed product sequence.
//
// Manual navigation and the autoplay timer share the same index-update path
// under one mutex, so consumers never observe a half-applied advance. The
// autoplay runner is torn down and recreated whenever suspension, the page
// size, or the total changes, so a stale timer can never advance a carousel
// whose bounds have moved.
type Engine struct {
	mu        sync.Mutex
	current   int
	pageSize  int
	total     int
	suspended bool
	interval  time.Duration
	stop      chan struct{} // autoplay runner stop signal, nil when idle
	closed    bool
}

// NewEngine creates an engine for the given page size. interval <= 0
// disables autoplay entirely. The engine starts with zero products; autoplay
// only runs once SetTotal reports a non-empty sequence.
func NewEngine(pageSize int, interval time.Duration) *Engine {
	return &Engine{pageSize: pageSize, interval: interval}
}

func (e *Engine) maxIndexLocked() int {
	if e.total <= e.pageSize {
		return 0
	}
	return e.total - e.pageSize
}

// Next advances one position, wrapping to the start past the last page.
func (e *Engine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current >= e.maxIndexLocked() {
		e.current = 0
	} else {
		e.current++
	}
}

// Prev steps back one position, wrapping to the end before the first.
func (e *Engine) Prev() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current <= 0 {
		e.current = e.maxIndexLocked()
	} else {
		e.current--
	}
}

// GoTo jumps to the given dot index. It validates the target against the
// bounds under the same lock that applies it, so a concurrent resize cannot
// slip a stale index past the check. Returns false when the target is outside
// [0, MaxIndex], leaving the position unchanged.
func (e *Engine) GoTo(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i > e.maxIndexLocked() {
		return false
	}
	e.current = i
	return true
}

// Suspend pauses autoplay; manual navigation keeps working.
func (e *Engine) Suspend() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended = true
	e.restartAutoplayLocked()
}

// Resume restarts autoplay after a Suspend.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended = false
	e.restartAutoplayLocked()
}

// SetPageSize applies a reclassified viewport, clamping the index into the
// new valid range.
func (e *Engine) SetPageSize(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 1 {
		n = 1
	}
	e.pageSize = n
	e.clampLocked()
	e.restartAutoplayLocked()
}

// SetTotal applies a replaced product sequence, clamping the index into the
// new valid range.
func (e *Engine) SetTotal(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 0 {
		n = 0
	}
	e.total = n
	e.clampLocked()
	e.restartAutoplayLocked()
}

func (e *Engine) clampLocked() {
	if max := e.maxIndexLocked(); e.current > max {
		e.current = max
	}
	if e.current < 0 {
		e.current = 0
	}
}

// Snapshot returns the current position.
func (e *Engine) Snapshot() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Position{
		Current:   e.current,
		PageSize:  e.pageSize,
		Total:     e.total,
		MaxIndex:  e.maxIndexLocked(),
		Suspended: e.suspended,
	}
}

// Close stops autoplay permanently. The engine itself remains usable for
// manual navigation, which only matters to tests; sessions discard it.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.restartAutoplayLocked()
}

// restartAutoplayLocked tears down the current runner, if any, and starts a
// fresh one when autoplay should be active. Must be called with e.mu held.
func (e *Engine) restartAutoplayLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	if e.closed || e.suspended || e.interval <= 0 || e.total == 0 {
		return
	}
	e.stop = make(chan struct{})
	go e.autoplay(e.stop)
}

func (e *Engine) autoplay(stop chan struct{}) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick may race a restart; re-check before advancing so a
			// retired runner never touches the index.
			select {
			case <-stop:
				return
			default:
			}
			e.Next()
		}
	}
}
