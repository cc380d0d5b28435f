// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framebuffer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpures/pixel"
)

// Framebuffer errors.
var (
	// ErrIncompatibleFormat is returned when a runtime format is used in a
	// slot it cannot serve: a non-renderable or non-color format in a color
	// slot, or a non-depth format in a depth slot.
	ErrIncompatibleFormat = errors.New("framebuffer: incompatible pixel format")

	// ErrTooManyAttachments is returned when a color slot would exceed
	// MaxColorAttachments.
	ErrTooManyAttachments = errors.New("framebuffer: too many color attachments")

	// ErrNoSurface is returned by BackBuffer when the context has no
	// presentable surface.
	ErrNoSurface = errors.New("framebuffer: context has no surface")

	// ErrNilContext is returned when a nil context is passed.
	ErrNilContext = errors.New("framebuffer: context is nil")
)

// Slot names the kind of attachment in an AttachmentError.
type Slot uint8

const (
	// SlotColor is a color attachment.
	SlotColor Slot = iota
	// SlotDepth is the depth attachment.
	SlotDepth
)

// String returns "color" or "depth".
func (s Slot) String() string {
	if s == SlotDepth {
		return "depth"
	}
	return "color"
}

// AttachmentError reports the attachment whose reification failed.
// Err is the backend error, unchanged.
type AttachmentError struct {
	Slot   Slot
	Index  int // color attachment index; 0 for depth
	Format pixel.Format
	Err    error
}

func (e *AttachmentError) Error() string {
	if e.Slot == SlotDepth {
		return fmt.Sprintf("framebuffer: depth attachment (%v): %v", e.Format, e.Err)
	}
	return fmt.Sprintf("framebuffer: color attachment %d (%v): %v", e.Index, e.Format, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }
