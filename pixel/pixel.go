// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixel

import "errors"

// ErrUnknownFormat is returned by Parse for names that match no format.
var ErrUnknownFormat = errors.New("pixel: unknown format")

// Pixel is implemented by the zero-size pixel types of this package.
// A pixel type stands for exactly one Format.
type Pixel interface {
	Format() Format
}

// ColorPixel is a pixel type holding color data.
type ColorPixel interface {
	Pixel
	colorPixel()
}

// RenderablePixel is a pixel type that can be rendered to.
type RenderablePixel interface {
	Pixel
	renderablePixel()
}

// DepthPixel is a pixel type usable as a depth attachment.
type DepthPixel interface {
	Pixel
	depthPixel()
}

// ColorAttachment is a pixel type usable as a color attachment: it must be
// both a color pixel and renderable.
type ColorAttachment interface {
	ColorPixel
	RenderablePixel
}

type (
	// R8 is an 8-bit single channel color pixel.
	R8 struct{}
	// RG8 is an 8-bit two channel color pixel.
	RG8 struct{}
	// RGBA8 is an 8-bit RGBA color pixel.
	RGBA8 struct{}
	// RGBA8SRGB is an 8-bit RGBA color pixel in sRGB space.
	RGBA8SRGB struct{}
	// BGRA8 is an 8-bit BGRA color pixel.
	BGRA8 struct{}
	// RGBA8Snorm is an 8-bit signed RGBA color pixel. Not renderable.
	RGBA8Snorm struct{}
	// R16F is a 16-bit float single channel color pixel.
	R16F struct{}
	// RG16F is a 16-bit float two channel color pixel.
	RG16F struct{}
	// RGBA16F is a 16-bit float RGBA color pixel.
	RGBA16F struct{}
	// R32F is a 32-bit float single channel color pixel.
	R32F struct{}
	// RG32F is a 32-bit float two channel color pixel.
	RG32F struct{}
	// RGBA32F is a 32-bit float RGBA color pixel.
	RGBA32F struct{}
	// R32UI is a 32-bit unsigned integer color pixel.
	R32UI struct{}
	// Depth16 is a 16-bit depth pixel.
	Depth16 struct{}
	// Depth24 is a 24-bit depth pixel.
	Depth24 struct{}
	// Depth24Stencil8 is a 24-bit depth pixel with 8 stencil bits.
	Depth24Stencil8 struct{}
	// Depth32F is a 32-bit float depth pixel.
	Depth32F struct{}
)

func (R8) Format() Format              { return FormatR8 }
func (RG8) Format() Format             { return FormatRG8 }
func (RGBA8) Format() Format           { return FormatRGBA8 }
func (RGBA8SRGB) Format() Format       { return FormatRGBA8SRGB }
func (BGRA8) Format() Format           { return FormatBGRA8 }
func (RGBA8Snorm) Format() Format      { return FormatRGBA8Snorm }
func (R16F) Format() Format            { return FormatR16F }
func (RG16F) Format() Format           { return FormatRG16F }
func (RGBA16F) Format() Format         { return FormatRGBA16F }
func (R32F) Format() Format            { return FormatR32F }
func (RG32F) Format() Format           { return FormatRG32F }
func (RGBA32F) Format() Format         { return FormatRGBA32F }
func (R32UI) Format() Format           { return FormatR32UI }
func (Depth16) Format() Format         { return FormatDepth16 }
func (Depth24) Format() Format         { return FormatDepth24 }
func (Depth24Stencil8) Format() Format { return FormatDepth24Stencil8 }
func (Depth32F) Format() Format        { return FormatDepth32F }

func (R8) colorPixel()         {}
func (RG8) colorPixel()        {}
func (RGBA8) colorPixel()      {}
func (RGBA8SRGB) colorPixel()  {}
func (BGRA8) colorPixel()      {}
func (RGBA8Snorm) colorPixel() {}
func (R16F) colorPixel()       {}
func (RG16F) colorPixel()      {}
func (RGBA16F) colorPixel()    {}
func (R32F) colorPixel()       {}
func (RG32F) colorPixel()      {}
func (RGBA32F) colorPixel()    {}
func (R32UI) colorPixel()      {}

func (R8) renderablePixel()        {}
func (RG8) renderablePixel()       {}
func (RGBA8) renderablePixel()     {}
func (RGBA8SRGB) renderablePixel() {}
func (BGRA8) renderablePixel()     {}
func (R16F) renderablePixel()      {}
func (RG16F) renderablePixel()     {}
func (RGBA16F) renderablePixel()   {}
func (R32F) renderablePixel()      {}
func (RG32F) renderablePixel()     {}
func (RGBA32F) renderablePixel()   {}
func (R32UI) renderablePixel()     {}

func (Depth16) depthPixel()         {}
func (Depth24) depthPixel()         {}
func (Depth24Stencil8) depthPixel() {}
func (Depth32F) depthPixel()        {}

// Compile-time checks that the type tags agree with the descriptor table.
var (
	_ ColorAttachment = R8{}
	_ ColorAttachment = RG8{}
	_ ColorAttachment = RGBA8{}
	_ ColorAttachment = RGBA8SRGB{}
	_ ColorAttachment = BGRA8{}
	_ ColorPixel      = RGBA8Snorm{}
	_ ColorAttachment = R16F{}
	_ ColorAttachment = RG16F{}
	_ ColorAttachment = RGBA16F{}
	_ ColorAttachment = R32F{}
	_ ColorAttachment = RG32F{}
	_ ColorAttachment = RGBA32F{}
	_ ColorAttachment = R32UI{}
	_ DepthPixel      = Depth16{}
	_ DepthPixel      = Depth24{}
	_ DepthPixel      = Depth24Stencil8{}
	_ DepthPixel      = Depth32F{}
)
