// Package idalloc implements the monotonic HMI outbound message id
// allocator (spec §4.1): a strictly increasing u32, thread-safe via atomic
// increment, never reused within a process lifetime. Wraparound after
// ~4x10^9 messages is unbounded by this spec (O.Q. 2) and is not
// special-cased here.
package idalloc

import "sync/atomic"

// Allocator hands out strictly increasing HMI message ids starting at 1;
// 0 is reserved to mean "no correlation."
type Allocator struct {
	next atomic.Uint32
}

// New builds an Allocator whose first Next() call returns 1.
func New() *Allocator {
	a := &Allocator{}
	a.next.Store(1)
	return a
}

// Next returns the next id and advances the counter.
func (a *Allocator) Next() uint32 {
	return a.next.Add(1) - 1
}
