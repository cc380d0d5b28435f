// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the HAL backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrHALBackend is returned when the requested HAL backend is not
	// compiled in.
	ErrHALBackend = errors.New("native: HAL backend not available")

	// ErrNotHALProvider is returned by FromProvider when the provider does
	// not expose hal.Device and hal.Queue.
	ErrNotHALProvider = errors.New("native: provider does not expose HAL types")

	// ErrNilHALDevice is returned when a nil device or queue is given.
	ErrNilHALDevice = errors.New("native: HAL device is nil")
)
