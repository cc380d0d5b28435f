// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gpures/buffer"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// instanceFactory is the part of a HAL backend used to open a device.
type instanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Device implements backend.Device on a gogpu/wgpu HAL device.
//
// A Device either owns its HAL device (NewStandalone, NewNoop) and destroys
// it on Close, or borrows one (New, FromProvider) and leaves it alone.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// All resource tables are protected by a mutex.
type Device struct {
	mu   sync.RWMutex
	name string
	opts options

	// open acquires the HAL device during Init. Nil for borrowed devices.
	open     func() (*openedDevice, error)
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool

	initialized bool

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps IDs to hal resources
	textures map[uint64]*Texture
	buffers  map[buffer.Handle]*halBuffer
}

var _ backend.Device = (*Device)(nil)

func newDevice(name string, opts []Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{name: name, opts: o}
	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)
	return d
}

// New returns a device that allocates on an existing HAL device and queue.
// The caller keeps ownership of both; Close releases only the resources the
// Device created.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	d := newDevice(backend.BackendNative, opts)
	d.device = device
	d.queue = queue
	return d, nil
}

// FromProvider returns a device sharing the GPU of a host application.
//
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue, as gogpu does. Back buffers report
// the provider's surface format unless WithSurfaceFormat is given.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}

	withProvider := append([]Option{WithSurfaceFormat(provider.SurfaceFormat())}, opts...)
	return New(device, queue, withProvider...)
}

// NewStandalone returns a device that opens its own GPU on the given HAL
// backend during Init. Discrete and integrated GPUs are preferred over
// other adapters.
func NewStandalone(api gputypes.Backend, opts ...Option) *Device {
	d := newDevice(backend.BackendNative, opts)
	d.open = func() (*openedDevice, error) {
		b, ok := hal.GetBackend(api)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrHALBackend, api)
		}
		return openDevice(b)
	}
	return d
}

// NewNoop returns a device on the wgpu noop HAL backend. It allocates HAL
// objects without a GPU and keeps buffer contents on the host, which makes
// it suitable for headless checks and tests.
func NewNoop(opts ...Option) *Device {
	d := newDevice(backend.BackendNoop, opts)
	d.open = func() (*openedDevice, error) {
		return openDevice(&noop.API{})
	}
	return d
}

// OpenNoop returns an initialized noop device.
func OpenNoop(opts ...Option) (*Device, error) {
	d := NewNoop(opts...)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// openedDevice is a HAL device opened by a Device.
type openedDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string
}

func openDevice(api instanceFactory) (*openedDevice, error) {
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &openedDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		adapter:  selected.Info.Name,
	}, nil
}

// newID generates a unique resource ID.
func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// Name returns "native" or "noop".
func (d *Device) Name() string {
	return d.name
}

// Init opens the HAL device if the Device owns one.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		return nil
	}

	if d.open != nil {
		opened, err := d.open()
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		d.instance = opened.instance
		d.device = opened.device
		d.queue = opened.queue
		d.owned = true
		gpures.Logger().Info("HAL device opened", "backend", d.name, "adapter", opened.adapter)
	}

	d.textures = make(map[uint64]*Texture)
	d.buffers = make(map[buffer.Handle]*halBuffer)
	d.initialized = true
	return nil
}

// Close destroys every texture and buffer still alive, then the HAL device
// if the Device owns it.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return
	}

	if n, m := len(d.textures), len(d.buffers); n > 0 || m > 0 {
		gpures.Logger().Warn("HAL device closed with live resources",
			"backend", d.name, "textures", n, "buffers", m)
	}
	for _, t := range d.textures {
		t.destroyLocked()
	}
	for _, b := range d.buffers {
		d.device.DestroyBuffer(b.raw)
	}
	d.textures = nil
	d.buffers = nil

	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
		d.device, d.queue, d.instance = nil, nil, nil
		d.owned = false
		gpures.Logger().Info("HAL device closed", "backend", d.name)
	}
	d.initialized = false
}

// SurfaceFormat returns the surface format given by WithSurfaceFormat or
// the provider, or gputypes.TextureFormatUndefined.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return d.opts.surfaceFormat
}

// HalDevice returns the underlying hal.Device, or nil before Init.
func (d *Device) HalDevice() any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.device
}

// HalQueue returns the underlying hal.Queue, or nil before Init.
func (d *Device) HalQueue() any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.queue
}

// Live returns the number of textures and buffers not yet destroyed.
func (d *Device) Live() (textures, buffers int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures), len(d.buffers)
}

func (d *Device) label(s string) string {
	return d.opts.labelPrefix + s
}
