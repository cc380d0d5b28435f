// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides pluggable GPU resource devices.
//
// A [Device] reifies framebuffer attachments and stores typed buffers, so
// it can be passed to framebuffer.New and buffer.New directly.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is registered by this package:
//
//	import _ "github.com/gogpu/gpures/backend"
//
// The HAL backends ("native" and "noop") register when
// github.com/gogpu/gpures/backend/native is imported.
//
// # Backend Selection
//
//	// The best available device, initialized
//	dev, err := backend.InitDefault()
//
//	// Or a specific backend by name
//	dev, err := backend.Open("software")
//
// # Available Backends
//
//   - "software": host memory, always available
//   - "native": gogpu/wgpu HAL device on a real GPU
//   - "noop": gogpu/wgpu HAL noop device, for headless checks
package backend
