// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"fmt"

	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gputypes"
)

// DefaultAttachmentUsage is the usage given to framebuffer attachments:
// render target, sampled in later passes, and readable by copy.
var DefaultAttachmentUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc

// Descriptor describes one texture to reify.
// This mirrors the WebGPU GPUTextureDescriptor.
type Descriptor struct {
	// Label is an optional debug label.
	Label string

	// Format is the pixel format of every mip level.
	Format pixel.Format

	// Dim is the texture dimension.
	Dim Dim

	// Size is the normalized extent of level 0.
	Size Size

	// Mipmaps is the number of levels on top of level 0.
	Mipmaps int

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// MipLevelCount returns the total number of levels, level 0 included.
func (d *Descriptor) MipLevelCount() int {
	return 1 + d.Mipmaps
}

// Validate checks d against its own dimension. It does not apply backend
// limits.
func (d *Descriptor) Validate() error {
	if !d.Format.IsValid() {
		return fmt.Errorf("texture: invalid format %v", d.Format)
	}
	size, err := Normalize(d.Dim, d.Size)
	if err != nil {
		return err
	}
	if size != d.Size {
		return fmt.Errorf("%w: %v is not normalized for %v (want %v)", ErrInvalidSize, d.Size, d.Dim, size)
	}
	if d.Mipmaps < 0 {
		return fmt.Errorf("%w: negative mipmaps %d", ErrInvalidMipCount, d.Mipmaps)
	}
	if maxLevels := MaxMipLevels(d.Dim, d.Size); d.MipLevelCount() > maxLevels {
		return fmt.Errorf("%w: %d levels requested, %v allows %d", ErrInvalidMipCount, d.MipLevelCount(), d.Size, maxLevels)
	}
	return nil
}

// Texture is a backend-allocated texture.
type Texture interface {
	// Format returns the pixel format of the texture.
	Format() pixel.Format

	// Dim returns the texture dimension.
	Dim() Dim

	// Size returns the extent of level 0.
	Size() Size

	// MipLevels returns the number of levels, level 0 included.
	MipLevels() int

	// Destroy releases the backend resources of the texture.
	// Calling Destroy more than once is a no-op.
	Destroy()
}

// Reifier turns a texture description into a backend texture.
//
// Implementations may keep whatever internal state they need to track the
// textures they hand out. Reifiers are not required to be safe for
// concurrent use; callers serialize access to a context.
type Reifier interface {
	ReifyTexture(desc *Descriptor) (Texture, error)
}
