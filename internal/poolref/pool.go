// SPDX-License-Identifier: MIT
package poolref

import "fmt"

// ErrPoolExhausted reports a pool growth that would exceed MaxPages, the
// in-memory stand-in for memmap.hpp's on-disk "resize failed" condition
// (spec §7 IoError "pool resize failed").
type ErrPoolExhausted struct {
	Requested, MaxPages int
}

func (e *ErrPoolExhausted) Error() string {
	return fmt.Sprintf("poolref: growth to %d pages exceeds MaxPages %d", e.Requested, e.MaxPages)
}

// Pool is a growable, page-addressed arena of T, backed by one contiguous
// slice that may be reallocated (relocated) whenever it grows (spec §9
// "Never hand out raw pointers; always resolve through the pool so that a
// growth can relocate"). Not safe for concurrent use (spec §9 and §5: the
// backing store is single-writer during fit).
type Pool[T any] struct {
	pages    []T
	free     *FreeList
	maxPages int // 0 means unbounded
}

// NewPool returns an empty pool, pre-sized to initialPages, growing by
// doubling whenever an allocation does not fit (spec §9 "page-doubling
// growth"). maxPages bounds total growth; 0 means unbounded.
func NewPool[T any](initialPages, maxPages int) *Pool[T] {
	if initialPages < 1 {
		initialPages = 1
	}

	return &Pool[T]{
		pages:    make([]T, initialPages),
		free:     NewFreeList(initialPages),
		maxPages: maxPages,
	}
}

// PoolRef is a typed handle into a Pool: a page number plus the owning
// pool, resolved fresh on every access rather than cached as a pointer, so
// a relocating growth never leaves a dangling reference (spec §9).
type PoolRef[T any] struct {
	PageNum int
	pool    *Pool[T]
}

// Len reports the pool's current total page count.
func (p *Pool[T]) Len() int { return len(p.pages) }

// Alloc reserves n contiguous pages and returns a PoolRef to the first one,
// growing the pool (by doubling, at minimum to fit n) if no free block is
// large enough.
func (p *Pool[T]) Alloc(n int) (PoolRef[T], error) {
	if n <= 0 {
		panic("poolref: Alloc(n<=0)")
	}

	pageNum, ok := p.free.Allocate(n)
	if !ok {
		if err := p.grow(n); err != nil {
			return PoolRef[T]{}, err
		}
		pageNum, ok = p.free.Allocate(n)
		if !ok {
			panic("poolref: internal invariant: grow did not create a block large enough")
		}
	}

	return PoolRef[T]{PageNum: pageNum, pool: p}, nil
}

// grow doubles the pool's page count (at least enough to satisfy need
// pages beyond the current free capacity), reallocating the backing slice.
func (p *Pool[T]) grow(need int) error {
	newSize := len(p.pages) * 2
	if newSize < len(p.pages)+need {
		newSize = len(p.pages) + need
	}
	if p.maxPages > 0 && newSize > p.maxPages {
		if len(p.pages)+need > p.maxPages {
			return &ErrPoolExhausted{Requested: newSize, MaxPages: p.maxPages}
		}
		newSize = p.maxPages
	}

	grown := make([]T, newSize)
	copy(grown, p.pages)
	p.pages = grown
	p.free.IncreasePoolSize(newSize)

	return nil
}

// Free returns the n pages starting at ref.PageNum to the pool's free list,
// coalescing with adjacent free ranges (spec §9 "Free-block coalescing is
// required").
func (p *Pool[T]) Free(ref PoolRef[T], n int) {
	p.free.Free(ref.PageNum, ref.PageNum+n)
}

// Resolve returns the live slice of n pages starting at ref's page, read
// fresh from the pool's current backing array (never cached across a
// growth, per the type doc).
func (ref PoolRef[T]) Resolve(n int) []T {
	return ref.pool.pages[ref.PageNum : ref.PageNum+n]
}
