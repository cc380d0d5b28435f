// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixel

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format identifies a GPU pixel layout.
//
// Formats are plain values backed by a static descriptor table; the
// capability tags of a format never change at runtime.
type Format uint8

// Supported formats.
const (
	// Invalid is the zero Format. It is neither color nor depth.
	Invalid Format = iota

	// FormatR8 is a single 8-bit normalized channel.
	FormatR8
	// FormatRG8 is two 8-bit normalized channels.
	FormatRG8
	// FormatRGBA8 is four 8-bit normalized channels.
	FormatRGBA8
	// FormatRGBA8SRGB is four 8-bit channels in sRGB space.
	FormatRGBA8SRGB
	// FormatBGRA8 is four 8-bit normalized channels, blue first.
	FormatBGRA8
	// FormatRGBA8Snorm is four 8-bit signed normalized channels.
	// It can be sampled but not rendered to.
	FormatRGBA8Snorm
	// FormatR16F is a single 16-bit float channel (half-float luminance).
	FormatR16F
	// FormatRG16F is two 16-bit float channels.
	FormatRG16F
	// FormatRGBA16F is four 16-bit float channels.
	FormatRGBA16F
	// FormatR32F is a single 32-bit float channel.
	FormatR32F
	// FormatRG32F is two 32-bit float channels.
	FormatRG32F
	// FormatRGBA32F is four 32-bit float channels.
	FormatRGBA32F
	// FormatR32UI is a single 32-bit unsigned integer channel.
	FormatR32UI
	// FormatDepth16 is 16-bit normalized depth.
	FormatDepth16
	// FormatDepth24 is at least 24-bit depth.
	FormatDepth24
	// FormatDepth24Stencil8 is 24-bit depth plus 8-bit stencil.
	FormatDepth24Stencil8
	// FormatDepth32F is 32-bit float depth.
	FormatDepth32F

	formatCount
)

type capability uint8

const (
	capColor capability = 1 << iota
	capRenderable
	capDepth
	capStencil
)

type descriptor struct {
	name    string
	texture gputypes.TextureFormat
	bytes   int
	caps    capability
}

var descriptors = [formatCount]descriptor{
	Invalid:               {name: "invalid", texture: gputypes.TextureFormatUndefined},
	FormatR8:              {"r8", gputypes.TextureFormatR8Unorm, 1, capColor | capRenderable},
	FormatRG8:             {"rg8", gputypes.TextureFormatRG8Unorm, 2, capColor | capRenderable},
	FormatRGBA8:           {"rgba8", gputypes.TextureFormatRGBA8Unorm, 4, capColor | capRenderable},
	FormatRGBA8SRGB:       {"rgba8-srgb", gputypes.TextureFormatRGBA8UnormSrgb, 4, capColor | capRenderable},
	FormatBGRA8:           {"bgra8", gputypes.TextureFormatBGRA8Unorm, 4, capColor | capRenderable},
	FormatRGBA8Snorm:      {"rgba8-snorm", gputypes.TextureFormatRGBA8Snorm, 4, capColor},
	FormatR16F:            {"r16f", gputypes.TextureFormatR16Float, 2, capColor | capRenderable},
	FormatRG16F:           {"rg16f", gputypes.TextureFormatRG16Float, 4, capColor | capRenderable},
	FormatRGBA16F:         {"rgba16f", gputypes.TextureFormatRGBA16Float, 8, capColor | capRenderable},
	FormatR32F:            {"r32f", gputypes.TextureFormatR32Float, 4, capColor | capRenderable},
	FormatRG32F:           {"rg32f", gputypes.TextureFormatRG32Float, 8, capColor | capRenderable},
	FormatRGBA32F:         {"rgba32f", gputypes.TextureFormatRGBA32Float, 16, capColor | capRenderable},
	FormatR32UI:           {"r32ui", gputypes.TextureFormatR32Uint, 4, capColor | capRenderable},
	FormatDepth16:         {"depth16", gputypes.TextureFormatDepth16Unorm, 2, capDepth},
	FormatDepth24:         {"depth24", gputypes.TextureFormatDepth24Plus, 4, capDepth},
	FormatDepth24Stencil8: {"depth24-stencil8", gputypes.TextureFormatDepth24PlusStencil8, 4, capDepth | capStencil},
	FormatDepth32F:        {"depth32f", gputypes.TextureFormatDepth32Float, 4, capDepth},
}

func (f Format) desc() descriptor {
	if f >= formatCount {
		return descriptors[Invalid]
	}
	return descriptors[f]
}

// IsValid reports whether f names a supported format.
func (f Format) IsValid() bool {
	return f > Invalid && f < formatCount
}

// IsColor reports whether f holds color data.
func (f Format) IsColor() bool { return f.desc().caps&capColor != 0 }

// IsColorRenderable reports whether f can be used as a color attachment.
// Every color-renderable format is also a color format.
func (f Format) IsColorRenderable() bool {
	c := f.desc().caps
	return c&capColor != 0 && c&capRenderable != 0
}

// IsDepth reports whether f can be used as a depth attachment.
func (f Format) IsDepth() bool { return f.desc().caps&capDepth != 0 }

// HasStencil reports whether f carries a stencil aspect.
func (f Format) HasStencil() bool { return f.desc().caps&capStencil != 0 }

// BytesPerTexel returns the size of one texel of f in bytes.
// Invalid formats report 0.
func (f Format) BytesPerTexel() int { return f.desc().bytes }

// TextureFormat returns the WebGPU texture format matching f.
func (f Format) TextureFormat() gputypes.TextureFormat { return f.desc().texture }

// String returns the short lowercase name of f, as accepted by Parse.
func (f Format) String() string {
	if !f.IsValid() && f != Invalid {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return f.desc().name
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := Invalid + 1; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// Parse returns the format whose String form is name.
func Parse(name string) (Format, error) {
	for f := Invalid + 1; f < formatCount; f++ {
		if descriptors[f].name == name {
			return f, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FromTextureFormat returns the format matching a WebGPU texture format.
// It reports false for texture formats this package does not describe.
func FromTextureFormat(tf gputypes.TextureFormat) (Format, bool) {
	if tf == gputypes.TextureFormatUndefined {
		return Invalid, false
	}
	for f := Invalid + 1; f < formatCount; f++ {
		if descriptors[f].texture == tf {
			return f, true
		}
	}
	return Invalid, false
}
