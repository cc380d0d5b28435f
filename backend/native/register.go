// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/gpures/backend"
	"github.com/gogpu/gputypes"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// init registers the HAL backends on package import.
func init() {
	backend.Register(backend.BackendNative, func() backend.Device {
		return NewStandalone(gputypes.BackendVulkan)
	})
	backend.Register(backend.BackendNoop, func() backend.Device {
		return NewNoop()
	})
}
