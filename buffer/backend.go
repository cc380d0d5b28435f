// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import "errors"

// Buffer errors.
var (
	// ErrOverflow is returned when an element offset, or a byte range at the
	// backend level, lies outside the buffer.
	ErrOverflow = errors.New("buffer: offset out of bounds")

	// ErrTooManyValues is returned when a bulk write holds more values than
	// the buffer has elements.
	ErrTooManyValues = errors.New("buffer: too many values")

	// ErrElementType is returned by New when the element type has no fixed
	// binary size.
	ErrElementType = errors.New("buffer: element type has no fixed size")

	// ErrTooLarge is returned by New when the byte size of the buffer does
	// not fit in an int.
	ErrTooLarge = errors.New("buffer: buffer too large")

	// ErrNilBackend is returned by New when no backend is given.
	ErrNilBackend = errors.New("buffer: backend is nil")

	// ErrDestroyed is returned by operations on a destroyed buffer.
	ErrDestroyed = errors.New("buffer: buffer destroyed")
)

// Handle identifies a backend allocation. Zero is never a valid handle.
type Handle uint64

// Backend allocates and accesses untyped GPU buffers.
//
// Offsets and sizes are in bytes. WriteBuffer and ReadBuffer return
// ErrOverflow when the range leaves the allocation. A Backend is shared by
// many buffers and is not owned by any of them.
type Backend interface {
	// AllocateBuffer creates a zero-filled buffer of byteSize bytes.
	AllocateBuffer(byteSize uint64) (Handle, error)

	// WriteBuffer copies data into the buffer at byteOffset.
	WriteBuffer(h Handle, byteOffset uint64, data []byte) error

	// ReadBuffer returns n bytes of the buffer starting at byteOffset.
	ReadBuffer(h Handle, byteOffset, n uint64) ([]byte, error)

	// DestroyBuffer releases the buffer. Unknown handles are ignored.
	DestroyBuffer(h Handle)
}
