// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
)

// Texture errors.
var (
	// ErrInvalidSize is returned when a size has a zero extent or does not
	// fit the requested dimension.
	ErrInvalidSize = errors.New("texture: invalid size")

	// ErrInvalidDim is returned for unknown dimensions.
	ErrInvalidDim = errors.New("texture: invalid dimension")

	// ErrInvalidMipCount is returned when more mip levels are requested than
	// the size allows.
	ErrInvalidMipCount = errors.New("texture: invalid mip level count")
)

// CubeFaces is the number of layers of a cubemap.
const CubeFaces = 6

// Dim is the dimensionality (and layering) of a texture.
type Dim uint8

// Texture dimensions.
const (
	// Dim2 is a flat 2D texture. It is the zero value.
	Dim2 Dim = iota
	// Dim1 is a 1D texture.
	Dim1
	// Dim3 is a 3D (volume) texture.
	Dim3
	// Cubemap is a six-face cube texture.
	Cubemap
	// Dim1Array is a layered 1D texture.
	Dim1Array
	// Dim2Array is a layered 2D texture.
	Dim2Array
)

var dimNames = [...]string{
	Dim2:      "2d",
	Dim1:      "1d",
	Dim3:      "3d",
	Cubemap:   "cube",
	Dim1Array: "1d-array",
	Dim2Array: "2d-array",
}

// String returns the short name of d, as accepted by ParseDim.
func (d Dim) String() string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return fmt.Sprintf("Dim(%d)", uint8(d))
}

// ParseDim returns the dimension named s.
func ParseDim(s string) (Dim, error) {
	for d, name := range dimNames {
		if name == s {
			return Dim(d), nil
		}
	}
	return Dim2, fmt.Errorf("%w: %q", ErrInvalidDim, s)
}

// IsLayered reports whether the Depth extent of d counts array layers.
func (d Dim) IsLayered() bool {
	return d == Cubemap || d == Dim1Array || d == Dim2Array
}

// TextureDimension returns the WebGPU texture dimension used to allocate d.
// Layered and cube textures are allocated as 2D (or 1D) textures with
// several array layers.
func (d Dim) TextureDimension() gputypes.TextureDimension {
	switch d {
	case Dim1, Dim1Array:
		return gputypes.TextureDimension1D
	case Dim3:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimension2D
	}
}

// Size is the extent of a texture. Unused extents are 1 once normalized.
// For layered dimensions Depth is the layer count.
type Size struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Size2D returns a flat width × height size.
func Size2D(width, height uint32) Size {
	return Size{Width: width, Height: height, Depth: 1}
}

// String formats s as WxHxD.
func (s Size) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Width, s.Height, s.Depth)
}

// Normalize checks size against dim and fills the extents dim does not use.
// 1D sizes get Height and Depth 1, flat 2D sizes get Depth 1 and cubemaps
// get Depth CubeFaces. A Depth of 0 on a layered or 3D dimension means 1.
func Normalize(dim Dim, size Size) (Size, error) {
	if size.Width == 0 {
		return Size{}, fmt.Errorf("%w: zero width", ErrInvalidSize)
	}
	if size.Depth == 0 {
		size.Depth = 1
	}
	switch dim {
	case Dim1:
		size.Height, size.Depth = 1, 1
	case Dim1Array:
		size.Height = 1
	case Dim2:
		size.Depth = 1
	case Cubemap:
		if size.Height == 0 {
			size.Height = size.Width
		}
		if size.Width != size.Height {
			return Size{}, fmt.Errorf("%w: cubemap faces must be square, got %dx%d", ErrInvalidSize, size.Width, size.Height)
		}
		size.Depth = CubeFaces
	case Dim3, Dim2Array:
	default:
		return Size{}, fmt.Errorf("%w: %v", ErrInvalidDim, dim)
	}
	if size.Height == 0 {
		return Size{}, fmt.Errorf("%w: zero height", ErrInvalidSize)
	}
	return size, nil
}

// MaxMipLevels returns the length of the full mip chain of a texture of the
// given dimension and normalized size, level 0 included.
func MaxMipLevels(dim Dim, size Size) int {
	m := max(size.Width, size.Height)
	if dim == Dim3 {
		m = max(m, size.Depth)
	}
	if m == 0 {
		return 0
	}
	return bits.Len32(m)
}

// MipSize returns the extent of mip level of a texture of the given
// dimension and normalized size. Every extent halves per level, never below
// 1; array layers do not shrink.
func MipSize(dim Dim, size Size, level int) Size {
	shrink := func(v uint32) uint32 {
		if level >= 32 {
			return 1
		}
		return max(v>>uint(level), 1)
	}
	out := Size{Width: shrink(size.Width), Height: shrink(size.Height), Depth: size.Depth}
	if dim == Dim3 {
		out.Depth = shrink(size.Depth)
	}
	return out
}
