// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framebuffer

import (
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/gputypes"
)

// Option configures a Framebuffer during New.
//
// Example:
//
//	fb, err := framebuffer.New(ctx, color, depth, texture.Size{Width: 64, Height: 64, Depth: 6}, 0,
//		framebuffer.WithDim(texture.Cubemap),
//		framebuffer.WithLabel("shadow"))
type Option func(*options)

type options struct {
	dim   texture.Dim
	label string
	usage gputypes.TextureUsage
}

func defaultOptions() options {
	return options{
		dim:   texture.Dim2,
		usage: texture.DefaultAttachmentUsage,
	}
}

// WithDim sets the dimension of every attachment. The default is
// texture.Dim2.
func WithDim(dim texture.Dim) Option {
	return func(o *options) {
		o.dim = dim
	}
}

// WithLabel sets a debug label prefix. Attachments are labeled
// "<label>_color<i>" and "<label>_depth".
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithUsage overrides the usage flags of every attachment.
// RenderAttachment is always added.
func WithUsage(usage gputypes.TextureUsage) Option {
	return func(o *options) {
		o.usage = usage | gputypes.TextureUsageRenderAttachment
	}
}
