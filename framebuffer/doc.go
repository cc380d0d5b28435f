// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package framebuffer builds typed render targets on top of a pluggable
// backend.
//
// # Slots
//
// A framebuffer has a color slot and a depth slot. The color slot holds
// zero to [MaxColorAttachments] formats in a fixed order; the depth slot
// holds at most one format. Typed constructors check compatibility at
// compile time:
//
//	color := framebuffer.Color2(pixel.RGBA8{}, pixel.R16F{})
//	depth := framebuffer.Depth(pixel.Depth32F{})
//
//	framebuffer.Color(pixel.Depth32F{}) // does not compile
//	framebuffer.Depth(pixel.RGBA8{})    // does not compile
//
// [ColorFormats] and [DepthFormat] build slots from runtime values, for
// example formats read from a file, and check them when called.
//
// The format lists of a slot pair ([LayoutOf]) are known without calling
// the backend.
//
// # Allocation
//
// [New] reifies one texture per color format, in order, then the depth
// texture, through the context's [texture.Reifier]. Allocation is all or
// nothing. [BackBuffer] describes the existing on-screen target and
// allocates nothing.
//
//	fb, err := framebuffer.New(ctx, color, depth, texture.Size2D(256, 256), 0)
//	if err != nil {
//		return err
//	}
//	defer fb.Destroy()
//
//	albedo := fb.ColorSlot().Texture(0) // rgba8
//	lum := fb.ColorSlot().Texture(1)    // r16f
//
// Framebuffers are not safe for concurrent use.
package framebuffer
