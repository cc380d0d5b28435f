// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixel describes GPU pixel formats and their capabilities.
//
// Two views of the same formats are provided:
//
//   - [Format] is a runtime value with capability predicates
//     ([Format.IsColorRenderable], [Format.IsDepth]) and the matching
//     WebGPU texture format.
//   - Pixel types ([RGBA8], [R16F], [Depth32F], ...) are zero-size structs
//     whose method sets encode the same capabilities, so generic code can
//     require them at compile time with [ColorAttachment] or [DepthPixel].
//
// The capability interfaces are sealed: only the pixel types declared here
// satisfy them, which keeps the static tags in sync with the descriptor
// table.
package pixel
