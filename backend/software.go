// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/buffer"
	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
	"github.com/gogpu/gputypes"
)

// DefaultMaxTextureSize is the largest extent the software device accepts
// unless WithMaxTextureSize is given.
const DefaultMaxTextureSize = 8192

// DefaultMaxBytes is the host memory a software device may hold across all
// live textures and buffers unless WithMaxBytes is given.
const DefaultMaxBytes = 1 << 30

// SoftwareOption configures a SoftwareDevice.
type SoftwareOption func(*softwareOptions)

type softwareOptions struct {
	surfaceFormat  gputypes.TextureFormat
	maxTextureSize uint32
	maxBytes       uint64
}

// WithSurfaceFormat makes the software device report a presentable surface
// of the given format. Without it the device is headless and BackBuffer
// fails with framebuffer.ErrNoSurface.
func WithSurfaceFormat(f gputypes.TextureFormat) SoftwareOption {
	return func(o *softwareOptions) {
		o.surfaceFormat = f
	}
}

// WithMaxTextureSize sets the largest width, height or depth a texture may
// have.
func WithMaxTextureSize(n uint32) SoftwareOption {
	return func(o *softwareOptions) {
		o.maxTextureSize = n
	}
}

// WithMaxBytes sets the memory budget of the device. Allocations that
// would take the live total past n fail with ErrOutOfMemory.
func WithMaxBytes(n uint64) SoftwareOption {
	return func(o *softwareOptions) {
		o.maxBytes = n
	}
}

// SoftwareDevice is a Device backed by host memory.
// Textures keep one byte slice per mip level; buffers are byte slices.
//
// SoftwareDevice is safe for concurrent use; the resources it returns are
// not.
type SoftwareDevice struct {
	mu          sync.Mutex
	opts        softwareOptions
	initialized bool

	nextID   atomic.Uint64
	used     uint64
	textures map[uint64]*SoftwareTexture
	buffers  map[buffer.Handle][]byte
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() Device {
		return NewSoftwareDevice()
	})
}

// NewSoftwareDevice creates a new software device.
func NewSoftwareDevice(opts ...SoftwareOption) *SoftwareDevice {
	o := softwareOptions{
		surfaceFormat:  gputypes.TextureFormatUndefined,
		maxTextureSize: DefaultMaxTextureSize,
		maxBytes:       DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(&o)
	}
	d := &SoftwareDevice{opts: o}
	// 0 is never a valid handle.
	d.nextID.Store(1)
	return d
}

func (d *SoftwareDevice) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// Name returns the backend identifier.
func (d *SoftwareDevice) Name() string {
	return BackendSoftware
}

// Init initializes the device.
func (d *SoftwareDevice) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		return nil
	}
	d.textures = make(map[uint64]*SoftwareTexture)
	d.buffers = make(map[buffer.Handle][]byte)
	d.initialized = true
	gpures.Logger().Info("software device initialized",
		"max_texture_size", d.opts.maxTextureSize, "max_bytes", d.opts.maxBytes)
	return nil
}

// Close releases every texture and buffer still alive.
func (d *SoftwareDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return
	}
	if n, m := len(d.textures), len(d.buffers); n > 0 || m > 0 {
		gpures.Logger().Warn("software device closed with live resources", "textures", n, "buffers", m)
	}
	for _, t := range d.textures {
		t.levels = nil
		t.destroyed = true
	}
	d.textures = nil
	d.buffers = nil
	d.used = 0
	d.initialized = false
}

// SurfaceFormat returns the configured surface format, or
// gputypes.TextureFormatUndefined for a headless device.
func (d *SoftwareDevice) SurfaceFormat() gputypes.TextureFormat {
	return d.opts.surfaceFormat
}

// ReifyTexture allocates a zero-filled texture.
func (d *SoftwareDevice) ReifyTexture(desc *texture.Descriptor) (texture.Texture, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	if m := max(desc.Size.Width, desc.Size.Height, desc.Size.Depth); m > d.opts.maxTextureSize {
		return nil, fmt.Errorf("%w: extent %d exceeds max texture size %d", ErrInvalidDescriptor, m, d.opts.maxTextureSize)
	}

	sizes, total, ok := levelSizes(desc)
	if !ok {
		return nil, fmt.Errorf("%w: %v %v texture size overflows", ErrOutOfMemory, desc.Format, desc.Size)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil, ErrNotInitialized
	}
	if err := d.reserve(total); err != nil {
		return nil, fmt.Errorf("%v %v texture: %w", desc.Format, desc.Size, err)
	}
	levels := make([][]byte, len(sizes))
	for i, n := range sizes {
		levels[i] = make([]byte, n)
	}
	t := &SoftwareTexture{
		device: d,
		id:     d.newID(),
		desc:   *desc,
		levels: levels,
		bytes:  total,
	}
	d.textures[t.id] = t
	gpures.Logger().Debug("software texture created",
		"label", desc.Label, "format", desc.Format, "size", desc.Size, "levels", len(levels))
	return t, nil
}

// AllocateBuffer creates a zero-filled buffer.
func (d *SoftwareDevice) AllocateBuffer(byteSize uint64) (buffer.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return 0, ErrNotInitialized
	}
	if err := d.reserve(byteSize); err != nil {
		return 0, fmt.Errorf("buffer: %w", err)
	}
	h := buffer.Handle(d.newID())
	d.buffers[h] = make([]byte, byteSize)
	gpures.Logger().Debug("software buffer created", "handle", h, "size", byteSize)
	return h, nil
}

// WriteBuffer copies data into the buffer at byteOffset.
func (d *SoftwareDevice) WriteBuffer(h buffer.Handle, byteOffset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.lookupBuffer(h)
	if err != nil {
		return err
	}
	if !inBounds(byteOffset, uint64(len(data)), uint64(len(buf))) {
		return fmt.Errorf("%w: write [%d, %d) of %d bytes", buffer.ErrOverflow, byteOffset, byteOffset+uint64(len(data)), len(buf))
	}
	copy(buf[byteOffset:], data)
	return nil
}

// ReadBuffer returns a copy of n bytes starting at byteOffset.
func (d *SoftwareDevice) ReadBuffer(h buffer.Handle, byteOffset, n uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.lookupBuffer(h)
	if err != nil {
		return nil, err
	}
	if !inBounds(byteOffset, n, uint64(len(buf))) {
		return nil, fmt.Errorf("%w: read [%d, %d) of %d bytes", buffer.ErrOverflow, byteOffset, byteOffset+n, len(buf))
	}
	out := make([]byte, n)
	copy(out, buf[byteOffset:])
	return out, nil
}

// DestroyBuffer releases the buffer.
func (d *SoftwareDevice) DestroyBuffer(h buffer.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if buf, ok := d.buffers[h]; ok {
		delete(d.buffers, h)
		d.used -= uint64(len(buf))
		gpures.Logger().Debug("software buffer destroyed", "handle", h)
	}
}

// Used returns the bytes held by live textures and buffers.
func (d *SoftwareDevice) Used() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.used
}

// reserve charges n bytes to the budget. The mutex must be held.
func (d *SoftwareDevice) reserve(n uint64) error {
	if n > d.opts.maxBytes-d.used {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, n, d.used, d.opts.maxBytes)
	}
	d.used += n
	return nil
}

// levelSizes returns the byte size of every mip level of desc and their
// sum. It reports false if any size overflows uint64.
func levelSizes(desc *texture.Descriptor) (sizes []uint64, total uint64, ok bool) {
	bpt := uint64(desc.Format.BytesPerTexel())
	sizes = make([]uint64, desc.MipLevelCount())
	for i := range sizes {
		s := texture.MipSize(desc.Dim, desc.Size, i)
		n := bpt
		for _, e := range [...]uint32{s.Width, s.Height, s.Depth} {
			hi, lo := bits.Mul64(n, uint64(e))
			if hi != 0 {
				return nil, 0, false
			}
			n = lo
		}
		var carry uint64
		total, carry = bits.Add64(total, n, 0)
		if carry != 0 {
			return nil, 0, false
		}
		sizes[i] = n
	}
	return sizes, total, true
}

// Live returns the number of textures and buffers not yet destroyed.
func (d *SoftwareDevice) Live() (textures, buffers int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures), len(d.buffers)
}

func (d *SoftwareDevice) lookupBuffer(h buffer.Handle) ([]byte, error) {
	if !d.initialized {
		return nil, ErrNotInitialized
	}
	buf, ok := d.buffers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return buf, nil
}

func (d *SoftwareDevice) releaseTexture(t *SoftwareTexture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.textures[t.id]; ok {
		delete(d.textures, t.id)
		d.used -= t.bytes
		gpures.Logger().Debug("software texture destroyed", "label", t.desc.Label, "format", t.desc.Format)
	}
}

// inBounds reports whether [off, off+n) lies in [0, size).
func inBounds(off, n, size uint64) bool {
	return off <= size && n <= size-off
}

// SoftwareTexture is a texture in host memory.
type SoftwareTexture struct {
	device    *SoftwareDevice
	id        uint64
	desc      texture.Descriptor
	levels    [][]byte
	bytes     uint64
	destroyed bool
}

// Format returns the pixel format of the texture.
func (t *SoftwareTexture) Format() pixel.Format { return t.desc.Format }

// Dim returns the texture dimension.
func (t *SoftwareTexture) Dim() texture.Dim { return t.desc.Dim }

// Size returns the extent of level 0.
func (t *SoftwareTexture) Size() texture.Size { return t.desc.Size }

// MipLevels returns the number of mip levels, level 0 included.
func (t *SoftwareTexture) MipLevels() int { return t.desc.MipLevelCount() }

// Label returns the debug label.
func (t *SoftwareTexture) Label() string { return t.desc.Label }

// Level returns the texel storage of mip level i, tightly packed row by
// row and layer by layer. It returns nil after Destroy or when i is out of
// range.
func (t *SoftwareTexture) Level(i int) []byte {
	if i < 0 || i >= len(t.levels) {
		return nil
	}
	return t.levels[i]
}

// Destroy releases the texture storage. Destroy is idempotent.
func (t *SoftwareTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.levels = nil
	t.device.releaseTexture(t)
}
