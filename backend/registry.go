// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the host-memory backend.
	BackendSoftware = "software"
	// BackendNative is the name of the gogpu/wgpu HAL backend on a real GPU.
	BackendNative = "native"
	// BackendNoop is the name of the gogpu/wgpu HAL backend on the noop device.
	BackendNoop = "noop"
)

// DeviceFactory creates a new device instance.
type DeviceFactory func() Device

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]DeviceFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendNative, BackendSoftware, BackendNoop}
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a device instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Device {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available device based on priority.
// Priority order: native > software > noop, then any other backend in
// name order. Returns nil if no backends are registered.
func Default() Device {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(backends)) {
		if d := backends[name](); d != nil {
			return d
		}
	}
	return nil
}

// MustDefault returns the default device or panics.
func MustDefault() Device {
	d := Default()
	if d == nil {
		panic("backend: no backend available")
	}
	return d
}

// InitDefault returns the default device, initialized.
func InitDefault() (Device, error) {
	d := Default()
	if d == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open returns the named device, initialized.
func Open(name string) (Device, error) {
	d := Get(name)
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	if err := d.Init(); err != nil {
		return nil, fmt.Errorf("backend: init %s: %w", name, err)
	}
	return d, nil
}
