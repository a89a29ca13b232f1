package ringbuf

import "iter"

// Buffer is a fixed-capacity circular buffer. Once full, each Push silently
// overwrites the oldest element. The zero value is not usable; create buffers
// with New.
//
// Buffer is not safe for concurrent use; callers that share a buffer across
// goroutines must provide their own synchronization.
type Buffer[T any] struct {
	items []T
	head  int // index of the oldest element
	size  int
}

// New creates a buffer holding at most capacity elements.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Buffer[T]{items: make([]T, capacity)}, nil
}

// Push appends an element, overwriting the oldest one when the buffer is full.
func (b *Buffer[T]) Push(item T) {
	if b.size < len(b.items) {
		b.items[(b.head+b.size)%len(b.items)] = item
		b.size++
		return
	}
	b.items[b.head] = item
	b.head = (b.head + 1) % len(b.items)
}

// ToSlice returns the buffered elements oldest-first. The returned slice is a
// copy; mutating it does not affect the buffer.
func (b *Buffer[T]) ToSlice() []T {
	out := make([]T, 0, b.size)
	for i := range b.size {
		out = append(out, b.items[(b.head+i)%len(b.items)])
	}
	return out
}

// All returns an iterator over the buffered elements in the same oldest-first
// order as ToSlice.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range b.size {
			if !yield(b.items[(b.head+i)%len(b.items)]) {
				return
			}
		}
	}
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// IsEmpty reports whether the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool { return b.size == 0 }

// IsFull reports whether the next Push will overwrite the oldest element.
func (b *Buffer[T]) IsFull() bool { return b.size == len(b.items) }

// First returns the oldest element, or false if the buffer is empty.
func (b *Buffer[T]) First() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.items[b.head], true
}

// Last returns the newest element, or false if the buffer is empty.
func (b *Buffer[T]) Last() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.items[(b.head+b.size-1)%len(b.items)], true
}

// Clear removes all elements. The backing array is zeroed so buffered values
// do not outlive the clear for garbage collection purposes.
func (b *Buffer[T]) Clear() {
	clear(b.items)
	b.head = 0
	b.size = 0
}
