// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/buffer"
	"github.com/gogpu/gpures/framebuffer"
	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/gputypes"
)

func newSoftwareDevice(t *testing.T, opts ...SoftwareOption) *SoftwareDevice {
	t.Helper()
	d := NewSoftwareDevice(opts...)
	if err := d.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestSoftwareDeviceName(t *testing.T) {
	if got := NewSoftwareDevice().Name(); got != "software" {
		t.Errorf("Name() = %q, want %q", got, "software")
	}
}

func TestSoftwareDeviceNotInitialized(t *testing.T) {
	d := NewSoftwareDevice()
	if _, err := d.AllocateBuffer(4); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("AllocateBuffer() before Init error = %v, want ErrNotInitialized", err)
	}
	desc := &texture.Descriptor{Format: pixel.FormatRGBA8, Size: texture.Size2D(4, 4)}
	if _, err := d.ReifyTexture(desc); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReifyTexture() before Init error = %v, want ErrNotInitialized", err)
	}
}

func TestSoftwareGBuffer(t *testing.T) {
	d := newSoftwareDevice(t)
	fb, err := framebuffer.New(d,
		framebuffer.Color2(pixel.RGBA8{}, pixel.R16F{}),
		framebuffer.Depth(pixel.Depth32F{}),
		texture.Size2D(256, 256), 2)
	if err != nil {
		t.Fatalf("framebuffer.New() error = %v", err)
	}

	wantColor := []pixel.Format{pixel.FormatRGBA8, pixel.FormatR16F}
	if got := fb.ColorSlot().Formats(); !slices.Equal(got, wantColor) {
		t.Errorf("ColorSlot().Formats() = %v, want %v", got, wantColor)
	}
	if got := fb.Dimension(); got != texture.Size2D(256, 256) {
		t.Errorf("Dimension() = %v, want 256x256x1", got)
	}

	tests := []struct {
		tex   texture.Texture
		sizes []int
	}{
		{fb.ColorSlot().Texture(0), []int{256 * 256 * 4, 128 * 128 * 4, 64 * 64 * 4}},
		{fb.ColorSlot().Texture(1), []int{256 * 256 * 2, 128 * 128 * 2, 64 * 64 * 2}},
	}
	if depth, ok := fb.DepthSlot().Texture(); ok {
		tests = append(tests, struct {
			tex   texture.Texture
			sizes []int
		}{depth, []int{256 * 256 * 4, 128 * 128 * 4, 64 * 64 * 4}})
	} else {
		t.Fatal("DepthSlot().Texture() missing")
	}

	for _, tt := range tests {
		st, ok := tt.tex.(*SoftwareTexture)
		if !ok {
			t.Fatalf("texture is %T, want *SoftwareTexture", tt.tex)
		}
		if st.MipLevels() != 3 {
			t.Errorf("%v MipLevels() = %d, want 3", st.Format(), st.MipLevels())
		}
		for i, want := range tt.sizes {
			if got := len(st.Level(i)); got != want {
				t.Errorf("%v level %d = %d bytes, want %d", st.Format(), i, got, want)
			}
		}
		if st.Level(3) != nil {
			t.Errorf("%v Level(3) should be nil", st.Format())
		}
	}

	if n, _ := d.Live(); n != 3 {
		t.Errorf("live textures = %d, want 3", n)
	}
	fb.Destroy()
	if n, _ := d.Live(); n != 0 {
		t.Errorf("live textures after Destroy = %d, want 0", n)
	}
}

func TestSoftwareLayeredLevels(t *testing.T) {
	d := newSoftwareDevice(t)
	fb, err := framebuffer.New(d, framebuffer.Color(pixel.RGBA16F{}), framebuffer.NoDepth,
		texture.Size{Width: 16}, 1, framebuffer.WithDim(texture.Cubemap))
	if err != nil {
		t.Fatalf("framebuffer.New() error = %v", err)
	}
	defer fb.Destroy()

	st := fb.ColorSlot().Texture(0).(*SoftwareTexture)
	if got, want := len(st.Level(0)), 16*16*6*8; got != want {
		t.Errorf("level 0 = %d bytes, want %d", got, want)
	}
	if got, want := len(st.Level(1)), 8*8*6*8; got != want {
		t.Errorf("level 1 = %d bytes, want %d", got, want)
	}
}

func TestSoftwareRejectsDescriptors(t *testing.T) {
	d := newSoftwareDevice(t, WithMaxTextureSize(64))
	tests := []struct {
		name    string
		size    texture.Size
		mipmaps int
	}{
		{"too wide", texture.Size2D(128, 4), 0},
		{"too tall", texture.Size2D(4, 128), 0},
		{"too many levels", texture.Size2D(4, 4), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := framebuffer.New(d,
				framebuffer.Color2(pixel.RGBA8{}, pixel.R8{}), framebuffer.Depth(pixel.Depth16{}),
				tt.size, tt.mipmaps)
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Fatalf("framebuffer.New() error = %v, want ErrInvalidDescriptor", err)
			}
			var ae *framebuffer.AttachmentError
			if !errors.As(err, &ae) || ae.Index != 0 || ae.Slot != framebuffer.SlotColor {
				t.Errorf("error = %v, want color attachment 0 failure", err)
			}
			if n, _ := d.Live(); n != 0 {
				t.Errorf("live textures after failure = %d, want 0", n)
			}
		})
	}
}

func TestSoftwareBackBuffer(t *testing.T) {
	headless := newSoftwareDevice(t)
	if _, err := framebuffer.BackBuffer(headless, texture.Size2D(640, 480)); !errors.Is(err, framebuffer.ErrNoSurface) {
		t.Errorf("BackBuffer() on headless device error = %v, want ErrNoSurface", err)
	}

	d := newSoftwareDevice(t, WithSurfaceFormat(gputypes.TextureFormatRGBA8Unorm))
	fb, err := framebuffer.BackBuffer(d, texture.Size2D(640, 480))
	if err != nil {
		t.Fatalf("BackBuffer() error = %v", err)
	}
	if fb.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want RGBA8Unorm", fb.SurfaceFormat())
	}
	if n, _ := d.Live(); n != 0 {
		t.Errorf("BackBuffer() allocated %d textures", n)
	}
}

func TestSoftwareTypedBuffer(t *testing.T) {
	d := newSoftwareDevice(t)
	b, err := buffer.New[float32](d, 4)
	if err != nil {
		t.Fatalf("buffer.New() error = %v", err)
	}

	if _, ok := b.Get(10); ok {
		t.Error("Get(10) ok = true on a buffer of 4")
	}
	if err := b.Clear(2.5); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := b.Write(-1, 2); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := b.Write(0, 4); !errors.Is(err, buffer.ErrOverflow) {
		t.Errorf("Write(0, 4) error = %v, want ErrOverflow", err)
	}
	if err := b.WriteWhole(make([]float32, 5)); !errors.Is(err, buffer.ErrTooManyValues) {
		t.Errorf("WriteWhole(5) error = %v, want ErrTooManyValues", err)
	}
	got, err := b.ReadWhole()
	if err != nil {
		t.Fatalf("ReadWhole() error = %v", err)
	}
	if want := []float32{2.5, 2.5, -1, 2.5}; !slices.Equal(got, want) {
		t.Errorf("ReadWhole() = %v, want %v", got, want)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("At(10) did not panic")
			}
		}()
		b.At(10)
	}()

	b.Destroy()
	if _, n := d.Live(); n != 0 {
		t.Errorf("live buffers after Destroy = %d, want 0", n)
	}
}

func TestSoftwareBufferBounds(t *testing.T) {
	d := newSoftwareDevice(t)
	h, err := d.AllocateBuffer(8)
	if err != nil {
		t.Fatalf("AllocateBuffer() error = %v", err)
	}
	tests := []struct {
		name string
		off  uint64
		n    int
		ok   bool
	}{
		{"whole", 0, 8, true},
		{"tail", 4, 4, true},
		{"empty at end", 8, 0, true},
		{"past end", 6, 4, false},
		{"offset past end", 9, 0, false},
		{"huge offset", ^uint64(0), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			werr := d.WriteBuffer(h, tt.off, make([]byte, tt.n))
			_, rerr := d.ReadBuffer(h, tt.off, uint64(tt.n))
			if tt.ok && (werr != nil || rerr != nil) {
				t.Errorf("write error = %v, read error = %v; want nil", werr, rerr)
			}
			if !tt.ok && (!errors.Is(werr, buffer.ErrOverflow) || !errors.Is(rerr, buffer.ErrOverflow)) {
				t.Errorf("write error = %v, read error = %v; want ErrOverflow", werr, rerr)
			}
		})
	}

	if err := d.WriteBuffer(h+100, 0, []byte{1}); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("WriteBuffer(unknown) error = %v, want ErrUnknownHandle", err)
	}
	d.DestroyBuffer(h)
	d.DestroyBuffer(h)
	if _, err := d.ReadBuffer(h, 0, 1); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("ReadBuffer() after destroy error = %v, want ErrUnknownHandle", err)
	}
}

func TestSoftwareCloseWarnsAboutLiveResources(t *testing.T) {
	orig := gpures.Logger()
	t.Cleanup(func() { gpures.SetLogger(orig) })
	var logs bytes.Buffer
	gpures.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	d := NewSoftwareDevice()
	if err := d.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := d.AllocateBuffer(4); err != nil {
		t.Fatalf("AllocateBuffer() error = %v", err)
	}
	d.Close()
	d.Close()

	out := logs.String()
	for _, want := range []string{"software device initialized", "software buffer created", "live resources"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSoftwareOutOfMemory(t *testing.T) {
	d := newSoftwareDevice(t)
	_, err := framebuffer.New(d, framebuffer.Color(pixel.RGBA32F{}), framebuffer.NoDepth,
		texture.Size{Width: 8192, Height: 8192, Depth: 8192}, 0,
		framebuffer.WithDim(texture.Dim3))
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("framebuffer.New() error = %v, want ErrOutOfMemory", err)
	}
	if n, _ := d.Live(); n != 0 || d.Used() != 0 {
		t.Errorf("after failure: %d textures, %d bytes in use; want none", n, d.Used())
	}

	if _, err := d.AllocateBuffer(DefaultMaxBytes + 1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("AllocateBuffer() error = %v, want ErrOutOfMemory", err)
	}

	huge := NewSoftwareDevice(WithMaxTextureSize(^uint32(0)), WithMaxBytes(^uint64(0)))
	if err := huge.Init(); err != nil {
		t.Fatal(err)
	}
	defer huge.Close()
	desc := &texture.Descriptor{
		Format: pixel.FormatRGBA32F,
		Dim:    texture.Dim3,
		Size:   texture.Size{Width: ^uint32(0), Height: ^uint32(0), Depth: ^uint32(0)},
	}
	if _, err := huge.ReifyTexture(desc); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("ReifyTexture() with an overflowing size error = %v, want ErrOutOfMemory", err)
	}
}

func TestSoftwareMemoryBudget(t *testing.T) {
	// 16x16 rgba8 with four extra levels: (256+64+16+4+1) texels of 4 bytes.
	const texBytes = 1364
	d := newSoftwareDevice(t, WithMaxBytes(texBytes+8))

	fb, err := framebuffer.New(d, framebuffer.Color(pixel.RGBA8{}), framebuffer.NoDepth, texture.Size2D(16, 16), 4)
	if err != nil {
		t.Fatalf("framebuffer.New() error = %v", err)
	}
	if got := d.Used(); got != texBytes {
		t.Errorf("Used() = %d, want %d", got, texBytes)
	}

	h, err := d.AllocateBuffer(8)
	if err != nil {
		t.Fatalf("AllocateBuffer(8) error = %v", err)
	}
	if _, err := d.AllocateBuffer(1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("AllocateBuffer(1) over budget error = %v, want ErrOutOfMemory", err)
	}
	if _, err := buffer.New[uint32](d, 1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("buffer.New() over budget error = %v, want ErrOutOfMemory", err)
	}

	d.DestroyBuffer(h)
	fb.Destroy()
	if got := d.Used(); got != 0 {
		t.Errorf("Used() after release = %d, want 0", got)
	}
	if _, err := d.AllocateBuffer(texBytes + 8); err != nil {
		t.Errorf("AllocateBuffer() of the whole budget error = %v", err)
	}
}
