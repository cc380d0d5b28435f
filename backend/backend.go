// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/gpures/buffer"
	"github.com/gogpu/gpures/framebuffer"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnknownHandle is returned for a buffer handle the device does not own.
	ErrUnknownHandle = errors.New("backend: unknown buffer handle")

	// ErrOutOfMemory is returned when an allocation exceeds the memory
	// left on the device.
	ErrOutOfMemory = errors.New("backend: out of memory")

	// ErrInvalidDescriptor is returned when a texture descriptor cannot be
	// served by the device.
	ErrInvalidDescriptor = errors.New("backend: invalid texture descriptor")
)

// Device is a GPU resource backend.
//
// A Device reifies framebuffer attachments and stores buffers. Devices are
// registered via Register() and selected via Get() or Default().
type Device interface {
	// Name returns the backend identifier (e.g., "software", "native").
	Name() string

	// Init initializes the device.
	// This must be called before any allocation.
	Init() error

	// Close releases all device resources.
	// The device should not be used after Close is called.
	Close()

	framebuffer.Context
	buffer.Backend
}
