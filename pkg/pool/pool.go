// Package pool provides a generational arena: values are addressed by stable,
// index-based handles instead of pointers, so graphs can reference each other
// without ownership cycles.
//
// Freeing a slot bumps its generation, which invalidates every outstanding handle
// to it while leaving the handles of other slots untouched. Accessing a stale or
// out-of-range handle panics.
package pool

import (
	"fmt"
	"iter"
)

// Handle addresses a value of type T inside a Pool[T].
// The zero Handle is "none" and never refers to a live value.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// None returns the empty handle.
func None[T any]() Handle[T] {
	return Handle[T]{}
}

// NewHandle builds a handle from raw parts. It is intended for tests and decoders.
func NewHandle[T any](index, generation uint32) Handle[T] {
	return Handle[T]{index: index, generation: generation}
}

// IsNone reports whether h is the empty handle.
func (h Handle[T]) IsNone() bool { return h.generation == 0 }

// IsSome reports whether h may refer to a value.
func (h Handle[T]) IsSome() bool { return h.generation != 0 }

// Index returns the slot index of h.
func (h Handle[T]) Index() uint32 { return h.index }

// Generation returns the generation of h.
func (h Handle[T]) Generation() uint32 { return h.generation }

func (h Handle[T]) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type record[T any] struct {
	generation uint32
	alive      bool
	value      T
}

// Pool owns values of type T and hands out generational handles to them.
// The zero value is an empty pool ready to use.
type Pool[T any] struct {
	records []record[T]
	free    []uint32
	alive   int
}

// Spawn stores value and returns its handle. Freed slots are reused, most recently
// freed first.
func (p *Pool[T]) Spawn(value T) Handle[T] {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		r := &p.records[idx]
		r.generation++
		if r.generation == 0 {
			// Generation 0 is reserved for the none handle.
			r.generation = 1
		}
		r.alive = true
		r.value = value
		p.alive++
		return Handle[T]{index: idx, generation: r.generation}
	}

	p.records = append(p.records, record[T]{generation: 1, alive: true, value: value})
	p.alive++
	return Handle[T]{index: uint32(len(p.records) - 1), generation: 1}
}

// IsValid reports whether h refers to a live value of this pool.
func (p *Pool[T]) IsValid(h Handle[T]) bool {
	if h.IsNone() || int(h.index) >= len(p.records) {
		return false
	}
	r := &p.records[h.index]
	return r.alive && r.generation == h.generation
}

// TryBorrow returns a pointer to the value addressed by h, or false if h is invalid.
func (p *Pool[T]) TryBorrow(h Handle[T]) (*T, bool) {
	if !p.IsValid(h) {
		return nil, false
	}
	return &p.records[h.index].value, true
}

// Borrow returns a pointer to the value addressed by h. It panics if h is invalid.
func (p *Pool[T]) Borrow(h Handle[T]) *T {
	v, ok := p.TryBorrow(h)
	if !ok {
		panic(fmt.Sprintf("pool: invalid handle %s (pool has %d slots)", h, len(p.records)))
	}
	return v
}

// Get returns a copy of the value addressed by h. It panics if h is invalid.
func (p *Pool[T]) Get(h Handle[T]) T {
	return *p.Borrow(h)
}

// Free removes the value addressed by h and returns it. It panics if h is invalid.
func (p *Pool[T]) Free(h Handle[T]) T {
	v := *p.Borrow(h)
	r := &p.records[h.index]
	var zero T
	r.value = zero
	r.alive = false
	p.free = append(p.free, h.index)
	p.alive--
	return v
}

// Len returns the number of live values.
func (p *Pool[T]) Len() int {
	return p.alive
}

// Clear removes every value. Generations are kept so old handles stay invalid.
func (p *Pool[T]) Clear() {
	var zero T
	p.free = p.free[:0]
	for i := len(p.records) - 1; i >= 0; i-- {
		r := &p.records[i]
		if r.alive {
			r.alive = false
			r.value = zero
		}
		p.free = append(p.free, uint32(i))
	}
	p.alive = 0
}

// All iterates live values in slot order.
func (p *Pool[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for i := range p.records {
			r := &p.records[i]
			if !r.alive {
				continue
			}
			if !yield(Handle[T]{index: uint32(i), generation: r.generation}, &r.value) {
				return
			}
		}
	}
}

// Handles returns the handles of live values in slot order.
func (p *Pool[T]) Handles() []Handle[T] {
	out := make([]Handle[T], 0, p.alive)
	for h := range p.All() {
		out = append(out, h)
	}
	return out
}
