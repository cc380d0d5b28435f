// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture defines texture dimensions, sizes, mip chains and the
// reification capability backends implement to allocate textures.
//
// A [Descriptor] carries everything a backend needs: format, [Dim], a
// [Size] normalized with [Normalize], and the number of additional mip
// levels. Level 0 always exists, so a descriptor with Mipmaps 2 asks for
// three levels.
package texture
