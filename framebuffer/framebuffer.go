// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framebuffer

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/gputypes"
)

// Context is the backend capability a framebuffer is built against.
//
// SurfaceFormat has the signature of gpucontext.DeviceProvider, so a host
// application's provider can be wrapped without adaptation. Contexts that
// cannot present report gputypes.TextureFormatUndefined.
//
// A context is a single logical owner of GPU state: New mutates it and must
// not run concurrently with other calls on the same context.
type Context interface {
	texture.Reifier
	SurfaceFormat() gputypes.TextureFormat
}

// Framebuffer is a render target made of zero or more color attachments
// and an optional depth attachment, all sharing one size and mip count.
//
// The attachment formats are fixed for the lifetime of the framebuffer;
// resizing means building a new one.
type Framebuffer struct {
	dim     texture.Dim
	size    texture.Size
	mipmaps int

	color ColorAttachments
	depth DepthAttachment

	backBuffer    bool
	surfaceFormat gputypes.TextureFormat
	destroyed     bool
}

// ColorAttachments are the reified textures of a ColorSlot.
type ColorAttachments struct {
	slot     ColorSlot
	textures []texture.Texture
}

// Slot returns the color slot the attachments were built from.
func (a *ColorAttachments) Slot() ColorSlot { return a.slot }

// Formats returns the color formats in attachment order.
func (a *ColorAttachments) Formats() []pixel.Format { return a.slot.Formats() }

// Len returns the number of color attachments.
func (a *ColorAttachments) Len() int { return len(a.textures) }

// Texture returns the texture of attachment i, whose format is
// Formats()[i]. It panics if i is out of range.
func (a *ColorAttachments) Texture(i int) texture.Texture { return a.textures[i] }

// Textures returns all color textures in attachment order.
func (a *ColorAttachments) Textures() []texture.Texture { return slices.Clone(a.textures) }

// DepthAttachment is the reified texture of a DepthSlot.
type DepthAttachment struct {
	slot    DepthSlot
	texture texture.Texture
}

// Slot returns the depth slot the attachment was built from.
func (a *DepthAttachment) Slot() DepthSlot { return a.slot }

// Format returns the depth format, or false when there is no depth
// attachment.
func (a *DepthAttachment) Format() (pixel.Format, bool) { return a.slot.Format() }

// Texture returns the depth texture, or false when there is none.
func (a *DepthAttachment) Texture() (texture.Texture, bool) {
	return a.texture, a.texture != nil
}

// BackBuffer returns the default on-screen target of ctx at the given size.
//
// No texture is allocated: the back buffer is owned by the context's
// surface, so the returned framebuffer has empty color and depth slots and
// records the surface format instead.
func BackBuffer(ctx Context, size texture.Size) (*Framebuffer, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	size, err := texture.Normalize(texture.Dim2, size)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: back buffer: %w", err)
	}
	sf := ctx.SurfaceFormat()
	if sf == gputypes.TextureFormatUndefined {
		return nil, ErrNoSurface
	}
	return &Framebuffer{
		dim:           texture.Dim2,
		size:          size,
		backBuffer:    true,
		surfaceFormat: sf,
	}, nil
}

// New allocates an off-screen framebuffer.
//
// Every attachment gets the given size and 1+mipmaps levels; level 0 is
// always created. Color textures are reified in slot order, then the depth
// texture. If any allocation fails, the textures already created are
// destroyed and the error is returned as an *AttachmentError wrapping the
// backend error; no framebuffer is returned.
func New(ctx Context, color ColorSlot, depth DepthSlot, size texture.Size, mipmaps int, opts ...Option) (*Framebuffer, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	size, err := texture.Normalize(o.dim, size)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}
	if mipmaps < 0 {
		return nil, fmt.Errorf("framebuffer: %w: negative mipmaps %d", texture.ErrInvalidMipCount, mipmaps)
	}
	if color.Len() > MaxColorAttachments {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyAttachments, color.Len(), MaxColorAttachments)
	}

	base := texture.Descriptor{
		Label:   o.label,
		Dim:     o.dim,
		Size:    size,
		Mipmaps: mipmaps,
		Usage:   o.usage,
	}

	colorTextures, err := color.reify(ctx, base)
	if err != nil {
		return nil, err
	}
	depthTexture, err := depth.reify(ctx, base)
	if err != nil {
		destroyAll(colorTextures)
		return nil, err
	}

	return &Framebuffer{
		dim:     o.dim,
		size:    size,
		mipmaps: mipmaps,
		color:   ColorAttachments{slot: color, textures: colorTextures},
		depth:   DepthAttachment{slot: depth, texture: depthTexture},
	}, nil
}

// Dimension returns the size of level 0 of every attachment.
func (fb *Framebuffer) Dimension() texture.Size { return fb.size }

// Dim returns the texture dimension of the attachments.
func (fb *Framebuffer) Dim() texture.Dim { return fb.dim }

// Mipmaps returns the number of levels on top of level 0.
func (fb *Framebuffer) Mipmaps() int { return fb.mipmaps }

// ColorSlot returns the color attachments.
func (fb *Framebuffer) ColorSlot() *ColorAttachments { return &fb.color }

// DepthSlot returns the depth attachment.
func (fb *Framebuffer) DepthSlot() *DepthAttachment { return &fb.depth }

// Layout returns the published formats of the framebuffer.
func (fb *Framebuffer) Layout() Layout { return LayoutOf(fb.color.slot, fb.depth.slot) }

// IsBackBuffer reports whether fb is the default on-screen target.
func (fb *Framebuffer) IsBackBuffer() bool { return fb.backBuffer }

// SurfaceFormat returns the surface format of a back buffer, or
// gputypes.TextureFormatUndefined for an off-screen framebuffer.
func (fb *Framebuffer) SurfaceFormat() gputypes.TextureFormat { return fb.surfaceFormat }

// Destroy releases every attachment texture. The back buffer owns no
// texture, so destroying it only marks it destroyed.
// Destroy is idempotent.
func (fb *Framebuffer) Destroy() {
	if fb.destroyed {
		return
	}
	fb.destroyed = true
	destroyAll(fb.color.textures)
	if fb.depth.texture != nil {
		fb.depth.texture.Destroy()
	}
}
