// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package buffer provides typed, fixed-length GPU arrays.
//
// A [Buffer] carries its element type as a type parameter only; the
// backend sees bytes. Single-element access is checked: [Buffer.Get]
// reports absence for an out-of-range index, [Buffer.Write] returns
// [ErrOverflow], and [Buffer.At] panics.
//
// int, uint and uintptr elements are stored as 64-bit words on every
// platform.
//
//	b, err := buffer.New[float32](dev, 4)
//	if err != nil {
//		return err
//	}
//	defer b.Destroy()
//
//	if err := b.Clear(1); err != nil {
//		return err
//	}
//	_, ok := b.Get(10) // ok == false
//	b.At(10)           // panics
package buffer
