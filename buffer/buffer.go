// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"fmt"
	"math"
	"reflect"
)

// Buffer is a fixed-length GPU array of T.
//
// T must have a fixed binary size: fixed-size numeric types, bools, and
// arrays or structs of them. int, uint and uintptr elements are stored as
// 64-bit words; inside arrays and structs they have no fixed size and are
// rejected. Elements are stored little endian and tightly packed, without
// the padding Go inserts between struct fields: a struct{ A uint8; B uint32 }
// element takes 5 bytes.
// The length is set by New and never changes.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	backend   Backend
	handle    Handle
	size      int
	elemSize  int
	destroyed bool
}

// New allocates a buffer of size elements of T on backend.
// The elements start zeroed.
func New[T any](backend Backend, size int) (*Buffer[T], error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if size < 0 {
		return nil, fmt.Errorf("buffer: negative size %d", size)
	}
	elemSize, err := elementSize[T]()
	if err != nil {
		return nil, err
	}
	// Host copies of the whole buffer are indexed with int.
	if size > math.MaxInt/elemSize {
		return nil, fmt.Errorf("%w: %d x %v", ErrTooLarge, size, reflect.TypeFor[T]())
	}
	h, err := backend.AllocateBuffer(uint64(size) * uint64(elemSize))
	if err != nil {
		return nil, fmt.Errorf("buffer: allocate %d x %v: %w", size, reflect.TypeFor[T](), err)
	}
	return &Buffer[T]{
		backend:  backend,
		handle:   h,
		size:     size,
		elemSize: elemSize,
	}, nil
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return b.size }

// ByteSize returns the size of the backing allocation in bytes.
func (b *Buffer[T]) ByteSize() uint64 { return uint64(b.size) * uint64(b.elemSize) }

// Handle returns the backend handle of the buffer.
func (b *Buffer[T]) Handle() Handle { return b.handle }

// Get returns element i, or false if i is out of range.
func (b *Buffer[T]) Get(i int) (T, bool) {
	var zero T
	if !b.inRange(i) {
		return zero, false
	}
	v, err := b.read(i)
	if err != nil {
		return zero, false
	}
	return v, true
}

// Read is Get.
func (b *Buffer[T]) Read(offset int) (T, bool) {
	return b.Get(offset)
}

// At returns element i. It panics if i is out of range or the backend
// fails to read.
func (b *Buffer[T]) At(i int) T {
	if !b.inRange(i) {
		panic(fmt.Sprintf("buffer: index out of range [%d] with length %d", i, b.size))
	}
	v, err := b.read(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Write stores x at element offset. It returns ErrOverflow if offset is
// outside [0, Len()).
func (b *Buffer[T]) Write(x T, offset int) error {
	if b.destroyed {
		return ErrDestroyed
	}
	if !b.inRange(offset) {
		return fmt.Errorf("%w: offset %d, length %d", ErrOverflow, offset, b.size)
	}
	data, err := appendElements(make([]byte, 0, b.elemSize), x)
	if err != nil {
		return err
	}
	return b.backend.WriteBuffer(b.handle, b.byteOffset(offset), data)
}

// WriteWhole stores values at elements [0, len(values)). It returns
// ErrTooManyValues if len(values) > Len(). A shorter slice leaves the
// remaining elements unchanged.
func (b *Buffer[T]) WriteWhole(values []T) error {
	if b.destroyed {
		return ErrDestroyed
	}
	if len(values) > b.size {
		return fmt.Errorf("%w: %d values, length %d", ErrTooManyValues, len(values), b.size)
	}
	if len(values) == 0 {
		return nil
	}
	data, err := appendElements(make([]byte, 0, len(values)*b.elemSize), values...)
	if err != nil {
		return err
	}
	return b.backend.WriteBuffer(b.handle, 0, data)
}

// Clear sets every element to x with a single backend write.
func (b *Buffer[T]) Clear(x T) error {
	if b.destroyed {
		return ErrDestroyed
	}
	if b.size == 0 {
		return nil
	}
	elem, err := appendElements(make([]byte, 0, b.elemSize), x)
	if err != nil {
		return err
	}
	data := make([]byte, 0, b.size*b.elemSize)
	for range b.size {
		data = append(data, elem...)
	}
	return b.backend.WriteBuffer(b.handle, 0, data)
}

// ReadWhole returns all Len() elements.
func (b *Buffer[T]) ReadWhole() ([]T, error) {
	if b.destroyed {
		return nil, ErrDestroyed
	}
	if b.size == 0 {
		return []T{}, nil
	}
	data, err := b.backend.ReadBuffer(b.handle, 0, b.ByteSize())
	if err != nil {
		return nil, err
	}
	return decodeElements[T](data, b.size, b.elemSize)
}

// Destroy releases the backend allocation. Destroy is idempotent.
func (b *Buffer[T]) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.backend.DestroyBuffer(b.handle)
}

func (b *Buffer[T]) inRange(i int) bool {
	return i >= 0 && i < b.size
}

func (b *Buffer[T]) byteOffset(i int) uint64 {
	return uint64(i) * uint64(b.elemSize)
}

func (b *Buffer[T]) read(i int) (T, error) {
	var zero T
	if b.destroyed {
		return zero, ErrDestroyed
	}
	data, err := b.backend.ReadBuffer(b.handle, b.byteOffset(i), uint64(b.elemSize))
	if err != nil {
		return zero, err
	}
	vs, err := decodeElements[T](data, 1, b.elemSize)
	if err != nil {
		return zero, err
	}
	return vs[0], nil
}
