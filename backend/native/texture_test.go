// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gpures/framebuffer"
	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var errViewFailed = errors.New("mock: view creation failed")

// recordingHALDevice wraps a HAL device, recording texture descriptors and
// optionally failing view creation.
type recordingHALDevice struct {
	hal.Device

	descs     []hal.TextureDescriptor
	failView  int // 1-based view call to fail; 0 never fails
	views     int
	destroyed int
}

func (d *recordingHALDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.descs = append(d.descs, *desc)
	return d.Device.CreateTexture(desc)
}

func (d *recordingHALDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.views++
	if d.views == d.failView {
		return nil, errViewFailed
	}
	return d.Device.CreateTextureView(tex, desc)
}

func (d *recordingHALDevice) DestroyTexture(tex hal.Texture) {
	d.destroyed++
	d.Device.DestroyTexture(tex)
}

func newRecordingDevice(t *testing.T, opts ...Option) (*Device, *recordingHALDevice) {
	t.Helper()
	owner := newNoopDevice(t)
	rec := &recordingHALDevice{Device: owner.HalDevice().(hal.Device)}
	d, err := New(rec, owner.HalQueue().(hal.Queue), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(d.Close)
	return d, rec
}

func TestReifyGBuffer(t *testing.T) {
	d, rec := newRecordingDevice(t, WithLabelPrefix("test_"))

	fb, err := framebuffer.New(d,
		framebuffer.Color2(pixel.RGBA8{}, pixel.R16F{}),
		framebuffer.Depth(pixel.Depth32F{}),
		texture.Size2D(256, 256), 0,
		framebuffer.WithLabel("gbuffer"))
	if err != nil {
		t.Fatalf("framebuffer.New() error = %v", err)
	}

	wantFormats := []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatR16Float,
		gputypes.TextureFormatDepth32Float,
	}
	wantLabels := []string{"test_gbuffer_color0", "test_gbuffer_color1", "test_gbuffer_depth"}
	if len(rec.descs) != len(wantFormats) {
		t.Fatalf("CreateTexture called %d times, want %d", len(rec.descs), len(wantFormats))
	}
	for i, desc := range rec.descs {
		if desc.Format != wantFormats[i] {
			t.Errorf("texture %d format = %v, want %v", i, desc.Format, wantFormats[i])
		}
		if desc.Label != wantLabels[i] {
			t.Errorf("texture %d label = %q, want %q", i, desc.Label, wantLabels[i])
		}
		if desc.Size.Width != 256 || desc.Size.Height != 256 || desc.Size.DepthOrArrayLayers != 1 {
			t.Errorf("texture %d size = %+v, want 256x256x1", i, desc.Size)
		}
		if desc.MipLevelCount != 1 || desc.SampleCount != 1 {
			t.Errorf("texture %d mips/samples = %d/%d, want 1/1", i, desc.MipLevelCount, desc.SampleCount)
		}
		if desc.Dimension != gputypes.TextureDimension2D {
			t.Errorf("texture %d dimension = %v, want 2D", i, desc.Dimension)
		}
		if desc.Usage&gputypes.TextureUsageRenderAttachment == 0 {
			t.Errorf("texture %d usage %v lacks RenderAttachment", i, desc.Usage)
		}
	}

	for i, tex := range fb.ColorSlot().Textures() {
		nt, ok := tex.(*Texture)
		if !ok {
			t.Fatalf("color texture %d is %T, want *Texture", i, tex)
		}
		if nt.Raw() == nil || nt.View() == nil {
			t.Errorf("color texture %d has no HAL texture or view", i)
		}
		if nt.Label() != wantLabels[i] {
			t.Errorf("color texture %d Label() = %q, want %q", i, nt.Label(), wantLabels[i])
		}
	}

	if n, _ := d.Live(); n != 3 {
		t.Errorf("live textures = %d, want 3", n)
	}
	fb.Destroy()
	if n, _ := d.Live(); n != 0 {
		t.Errorf("live textures after Destroy = %d, want 0", n)
	}
	if rec.destroyed != 3 {
		t.Errorf("DestroyTexture called %d times, want 3", rec.destroyed)
	}
}

func TestReifyLayered(t *testing.T) {
	d, rec := newRecordingDevice(t)
	tests := []struct {
		dim    texture.Dim
		size   texture.Size
		wantHD gputypes.TextureDimension
		layers uint32
	}{
		{texture.Cubemap, texture.Size{Width: 32}, gputypes.TextureDimension2D, 6},
		{texture.Dim2Array, texture.Size{Width: 32, Height: 16, Depth: 4}, gputypes.TextureDimension2D, 4},
		{texture.Dim3, texture.Size{Width: 8, Height: 8, Depth: 8}, gputypes.TextureDimension3D, 8},
		{texture.Dim1, texture.Size{Width: 64}, gputypes.TextureDimension1D, 1},
	}
	for _, tt := range tests {
		t.Run(tt.dim.String(), func(t *testing.T) {
			rec.descs = nil
			fb, err := framebuffer.New(d, framebuffer.Color(pixel.RGBA8{}), framebuffer.NoDepth, tt.size, 1,
				framebuffer.WithDim(tt.dim))
			if err != nil {
				t.Fatalf("framebuffer.New() error = %v", err)
			}
			defer fb.Destroy()
			desc := rec.descs[0]
			if desc.Dimension != tt.wantHD {
				t.Errorf("dimension = %v, want %v", desc.Dimension, tt.wantHD)
			}
			if desc.Size.DepthOrArrayLayers != tt.layers {
				t.Errorf("layers = %d, want %d", desc.Size.DepthOrArrayLayers, tt.layers)
			}
			if desc.MipLevelCount != 2 {
				t.Errorf("mip levels = %d, want 2", desc.MipLevelCount)
			}
		})
	}
}

func TestReifyViewFailureDestroysTexture(t *testing.T) {
	d, rec := newRecordingDevice(t)
	rec.failView = 2

	_, err := framebuffer.New(d,
		framebuffer.Color3(pixel.RGBA8{}, pixel.R16F{}, pixel.R32F{}),
		framebuffer.NoDepth, texture.Size2D(16, 16), 0)
	if !errors.Is(err, errViewFailed) {
		t.Fatalf("framebuffer.New() error = %v, want view failure", err)
	}
	var ae *framebuffer.AttachmentError
	if !errors.As(err, &ae) || ae.Index != 1 || ae.Format != pixel.FormatR16F {
		t.Errorf("error = %v, want color attachment 1 (r16f)", err)
	}
	// Texture 1 is destroyed by the device, texture 0 by the framebuffer.
	if rec.destroyed != 2 {
		t.Errorf("DestroyTexture called %d times, want 2", rec.destroyed)
	}
	if n, _ := d.Live(); n != 0 {
		t.Errorf("live textures = %d, want 0", n)
	}
	if len(rec.descs) != 2 {
		t.Errorf("CreateTexture called %d times, want 2", len(rec.descs))
	}
}

func TestReifyInvalidDescriptor(t *testing.T) {
	d := newNoopDevice(t)
	desc := &texture.Descriptor{Format: pixel.FormatRGBA8, Size: texture.Size2D(4, 4), Mipmaps: 5}
	if _, err := d.ReifyTexture(desc); !errors.Is(err, backend.ErrInvalidDescriptor) {
		t.Errorf("ReifyTexture() error = %v, want ErrInvalidDescriptor", err)
	}
}

func TestTextureDestroyIdempotent(t *testing.T) {
	d, rec := newRecordingDevice(t)
	tex, err := d.ReifyTexture(&texture.Descriptor{
		Format: pixel.FormatBGRA8,
		Size:   texture.Size2D(8, 8),
		Usage:  texture.DefaultAttachmentUsage,
	})
	if err != nil {
		t.Fatalf("ReifyTexture() error = %v", err)
	}
	nt := tex.(*Texture)
	nt.Destroy()
	nt.Destroy()
	if !nt.IsDestroyed() || nt.Raw() != nil || nt.View() != nil {
		t.Error("Destroy() left HAL objects behind")
	}
	if rec.destroyed != 1 {
		t.Errorf("DestroyTexture called %d times, want 1", rec.destroyed)
	}
}

func TestBackBufferFromNoop(t *testing.T) {
	headless := newNoopDevice(t)
	if _, err := framebuffer.BackBuffer(headless, texture.Size2D(320, 240)); !errors.Is(err, framebuffer.ErrNoSurface) {
		t.Errorf("BackBuffer() on headless device error = %v, want ErrNoSurface", err)
	}

	d := newNoopDevice(t, WithSurfaceFormat(gputypes.TextureFormatBGRA8Unorm))
	fb, err := framebuffer.BackBuffer(d, texture.Size2D(320, 240))
	if err != nil {
		t.Fatalf("BackBuffer() error = %v", err)
	}
	if got := fb.Layout(); len(got.ColorFormats) != 0 || got.HasDepth {
		t.Errorf("back buffer Layout() = %v, want empty", got)
	}
	if !slices.Equal(fb.ColorSlot().Formats(), nil) {
		t.Errorf("back buffer color formats = %v", fb.ColorSlot().Formats())
	}
}
