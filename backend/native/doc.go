// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native provides GPU resource devices on gogpu/wgpu HAL.
//
// Importing the package registers two backends: "native", which opens a
// Vulkan device on Init, and "noop", which runs on the wgpu noop HAL and
// needs no GPU.
//
// A host application that already owns a GPU shares it with FromProvider:
//
//	dev, err := native.FromProvider(app.DeviceProvider(), native.WithLabelPrefix("scene_"))
//	if err != nil {
//		return err
//	}
//	if err := dev.Init(); err != nil {
//		return err
//	}
//	back, err := framebuffer.BackBuffer(dev, texture.Size2D(w, h))
//
// Every attachment is a HAL texture with a default view. Buffers are HAL
// buffers with sizes rounded up to 4 bytes; their contents are mirrored on
// the host, and reads are served from the mirror.
package native
