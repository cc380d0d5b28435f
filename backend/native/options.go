// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "github.com/gogpu/gputypes"

// DefaultBufferUsage is the usage of every buffer unless WithBufferUsage is
// given.
var DefaultBufferUsage = gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc

// Option configures a Device.
type Option func(*options)

type options struct {
	labelPrefix   string
	surfaceFormat gputypes.TextureFormat
	bufferUsage   gputypes.BufferUsage
}

func defaultOptions() options {
	return options{
		surfaceFormat: gputypes.TextureFormatUndefined,
		bufferUsage:   DefaultBufferUsage,
	}
}

// WithLabelPrefix prepends prefix to the debug label of every HAL object
// the device creates.
func WithLabelPrefix(prefix string) Option {
	return func(o *options) {
		o.labelPrefix = prefix
	}
}

// WithSurfaceFormat sets the surface format reported to back buffers.
// For FromProvider it overrides the provider's format.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.surfaceFormat = f
	}
}

// WithBufferUsage sets the usage flags of buffers. CopyDst is always added
// since buffers are written through the queue.
func WithBufferUsage(u gputypes.BufferUsage) Option {
	return func(o *options) {
		o.bufferUsage = u | gputypes.BufferUsageCopyDst
	}
}
