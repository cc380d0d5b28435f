// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gpures/buffer"
	"github.com/gogpu/wgpu/hal"
)

// copyBufferAlignment is the alignment of buffer sizes, and of queue write
// offsets and lengths.
const copyBufferAlignment uint64 = 4

// halBuffer is a HAL buffer and its host shadow.
//
// Writes go to the shadow first and are uploaded through the queue as an
// aligned range, so reads never need a staging round trip.
type halBuffer struct {
	raw    hal.Buffer
	size   uint64 // requested size; len(shadow) is the aligned size
	shadow []byte
}

func alignUp(n uint64) uint64 {
	return (n + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)
}

// AllocateBuffer creates a HAL buffer of byteSize bytes rounded up to 4.
// An empty buffer still gets one aligned word.
func (d *Device) AllocateBuffer(byteSize uint64) (buffer.Handle, error) {
	alignedSize := max(alignUp(byteSize), copyBufferAlignment)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return 0, backend.ErrNotInitialized
	}

	id := d.newID()
	raw, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: d.label(fmt.Sprintf("buffer_%d", id)),
		Size:  alignedSize,
		Usage: d.opts.bufferUsage,
	})
	if err != nil {
		return 0, fmt.Errorf("buffer creation failed: %w", err)
	}

	h := buffer.Handle(id)
	d.buffers[h] = &halBuffer{
		raw:    raw,
		size:   byteSize,
		shadow: make([]byte, alignedSize),
	}
	gpures.Logger().Debug("HAL buffer created", "handle", h, "size", byteSize, "aligned", alignedSize)
	return h, nil
}

// WriteBuffer copies data into the buffer at byteOffset and uploads the
// enclosing aligned range through the queue.
func (d *Device) WriteBuffer(h buffer.Handle, byteOffset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := d.lookupBuffer(h)
	if err != nil {
		return err
	}
	n := uint64(len(data))
	if byteOffset > b.size || n > b.size-byteOffset {
		return fmt.Errorf("%w: write [%d, %d) of %d bytes", buffer.ErrOverflow, byteOffset, byteOffset+n, b.size)
	}
	if n == 0 {
		return nil
	}

	copy(b.shadow[byteOffset:], data)
	start, end := uploadRange(byteOffset, n)
	d.queue.WriteBuffer(b.raw, start, b.shadow[start:end])
	return nil
}

// uploadRange returns the aligned range enclosing [off, off+n).
func uploadRange(off, n uint64) (start, end uint64) {
	return off &^ (copyBufferAlignment - 1), alignUp(off + n)
}

// ReadBuffer returns n bytes starting at byteOffset from the host shadow.
func (d *Device) ReadBuffer(h buffer.Handle, byteOffset, n uint64) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, err := d.lookupBuffer(h)
	if err != nil {
		return nil, err
	}
	if byteOffset > b.size || n > b.size-byteOffset {
		return nil, fmt.Errorf("%w: read [%d, %d) of %d bytes", buffer.ErrOverflow, byteOffset, byteOffset+n, b.size)
	}
	out := make([]byte, n)
	copy(out, b.shadow[byteOffset:])
	return out, nil
}

// DestroyBuffer releases a HAL buffer.
func (d *Device) DestroyBuffer(h buffer.Handle) {
	d.mu.Lock()
	b, ok := d.buffers[h]
	if ok {
		delete(d.buffers, h)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBuffer(b.raw)
		gpures.Logger().Debug("HAL buffer destroyed", "handle", h)
	}
}

// RawBuffer returns the HAL buffer behind h.
func (d *Device) RawBuffer(h buffer.Handle) (hal.Buffer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.buffers[h]
	if !ok {
		return nil, false
	}
	return b.raw, true
}

func (d *Device) lookupBuffer(h buffer.Handle) (*halBuffer, error) {
	if !d.initialized {
		return nil, backend.ErrNotInitialized
	}
	b, ok := d.buffers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", backend.ErrUnknownHandle, h)
	}
	return b, nil
}
