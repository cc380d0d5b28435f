// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/wgpu/hal"
)

// Texture is a HAL texture with its default view.
//
// Lifecycle:
//  1. Created by Device.ReifyTexture (texture, then view)
//  2. Used through Raw and View for render passes
//  3. Destroy releases the view, then the texture
type Texture struct {
	device *Device
	id     uint64
	desc   texture.Descriptor
	label  string

	raw  hal.Texture
	view hal.TextureView

	destroyed bool
}

// ReifyTexture creates a HAL texture and a default view for desc.
// If the view cannot be created the texture is destroyed.
func (d *Device) ReifyTexture(desc *texture.Descriptor) (texture.Texture, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrInvalidDescriptor, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil, backend.ErrNotInitialized
	}

	label := d.label(desc.Label)
	raw, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: desc.Size.Depth,
		},
		MipLevelCount: uint32(desc.MipLevelCount()),
		SampleCount:   1,
		Dimension:     desc.Dim.TextureDimension(),
		Format:        desc.Format.TextureFormat(),
		Usage:         desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %v texture: %w", desc.Format, err)
	}

	view, err := d.device.CreateTextureView(raw, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		d.device.DestroyTexture(raw)
		return nil, fmt.Errorf("create %v texture view: %w", desc.Format, err)
	}

	t := &Texture{
		device: d,
		id:     d.newID(),
		desc:   *desc,
		label:  label,
		raw:    raw,
		view:   view,
	}
	d.textures[t.id] = t
	gpures.Logger().Debug("HAL texture created",
		"label", label, "format", desc.Format, "dim", desc.Dim, "size", desc.Size, "levels", desc.MipLevelCount())
	return t, nil
}

// Format returns the pixel format of the texture.
func (t *Texture) Format() pixel.Format { return t.desc.Format }

// Dim returns the texture dimension.
func (t *Texture) Dim() texture.Dim { return t.desc.Dim }

// Size returns the extent of level 0.
func (t *Texture) Size() texture.Size { return t.desc.Size }

// MipLevels returns the number of mip levels, level 0 included.
func (t *Texture) MipLevels() int { return t.desc.MipLevelCount() }

// Label returns the HAL debug label, prefix included.
func (t *Texture) Label() string { return t.label }

// Raw returns the underlying HAL texture, or nil after Destroy.
func (t *Texture) Raw() hal.Texture { return t.raw }

// View returns the default view, or nil after Destroy.
func (t *Texture) View() hal.TextureView { return t.view }

// IsDestroyed reports whether the texture has been destroyed.
func (t *Texture) IsDestroyed() bool { return t.destroyed }

// Destroy releases the view and the texture. Destroy is idempotent.
func (t *Texture) Destroy() {
	t.device.mu.Lock()
	defer t.device.mu.Unlock()
	t.destroyLocked()
}

// destroyLocked releases the HAL objects. The device mutex must be held.
func (t *Texture) destroyLocked() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.device.device != nil {
		t.device.device.DestroyTextureView(t.view)
		t.device.device.DestroyTexture(t.raw)
	}
	t.view, t.raw = nil, nil
	delete(t.device.textures, t.id)
	gpures.Logger().Debug("HAL texture destroyed", "label", t.label)
}
