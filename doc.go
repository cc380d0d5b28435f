// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpures provides typed GPU resources: framebuffers whose
// attachment formats are checked at compile time, and fixed-length typed
// buffers with bounds-checked access.
//
// # Overview
//
// The module is split by concern:
//   - pixel: pixel formats and the marker types used as type arguments
//   - texture: texture dimensions, sizes, mip chains and the Reifier
//     capability that allocates textures
//   - framebuffer: color and depth slots, framebuffers, the back buffer
//   - buffer: Buffer[T] over a byte-level Backend
//   - backend: the Device interface, the backend registry and the
//     host-memory software backend
//   - backend/native: backend on a gogpu/wgpu HAL device
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gpures/backend"
//	    "github.com/gogpu/gpures/framebuffer"
//	    "github.com/gogpu/gpures/pixel"
//	    "github.com/gogpu/gpures/texture"
//	)
//
//	dev, err := backend.Open(backend.BackendSoftware)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	fb, err := framebuffer.New(dev,
//	    framebuffer.Color2(pixel.RGBA8{}, pixel.R16F{}),
//	    framebuffer.Depth(pixel.Depth32F{}),
//	    texture.Size2D(256, 256), 0)
//
// # Logging
//
// The root package holds the module logger; see [SetLogger].
//
// # Thread Safety
//
// Framebuffers and buffers are not safe for concurrent use. Backends guard
// their resource tables, but a device must still be driven by one owner at
// a time.
package gpures

// Version is the module version.
const Version = "0.1.0"
