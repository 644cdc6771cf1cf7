// Package memo provides at-most-once value construction with retry on failure.
package memo

import (
	"sync"
	"sync/atomic"
)

// Cell holds a value that is constructed at most once.
//
// Unlike sync.Once, a failed construction does not poison the cell: the next
// Get runs the build function again. Once a build succeeds the value is fixed
// for the cell's lifetime and later reads are lock-free.
//
// The zero Cell is ready to use. A Cell must not be copied after first use.
type Cell[T any] struct {
	mu   sync.Mutex
	done atomic.Bool
	val  T
}

// Get returns the cached value, building it on first use.
//
// At most one caller runs build at a time; concurrent callers block until it
// returns. If build fails, nothing is cached and the error is returned, so a
// later Get attempts construction again.
func (c *Cell[T]) Get(build func() (T, error)) (T, error) {
	if c.done.Load() {
		return c.val, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done.Load() {
		return c.val, nil
	}

	v, err := build()
	if err != nil {
		var zero T
		return zero, err
	}

	c.val = v
	c.done.Store(true)
	return v, nil
}

// Peek returns the cached value without triggering construction.
func (c *Cell[T]) Peek() (T, bool) {
	if c.done.Load() {
		return c.val, true
	}
	var zero T
	return zero, false
}

// Done reports whether the cell holds a constructed value.
func (c *Cell[T]) Done() bool {
	return c.done.Load()
}
